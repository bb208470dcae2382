package ledger

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// 账本状态流转: PENDING -> COMPLETED | FAILED.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Store mediates access to the external transaction ledger. The ledger
// rows are owned by the accounting side; this store only performs the
// idempotency lookup for deposits and the status transitions for
// withdrawals.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// HasDepositTransaction 检查 (链上哈希, 用户) 是否已有入账记录, 用于充值去重.
func (s *Store) HasDepositTransaction(ctx context.Context, hash string, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ledger_transactions WHERE chain_tx_id = $1 AND user_id = $2)`,
		hash, userID,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check deposit transaction")
	}

	return exists, nil
}

// MarkWithdrawalCompleted 将提现记录置为 COMPLETED 并写入链上交易哈希.
func (s *Store) MarkWithdrawalCompleted(ctx context.Context, transactionID string, chainTxID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ledger_transactions SET status = $1, chain_tx_id = $2, updated_at = now() WHERE id = $3`,
		StatusCompleted, chainTxID, transactionID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to mark withdrawal completed")
	}

	return checkAffected(res, transactionID)
}

// MarkWithdrawalFailed 将提现记录置为 FAILED 并记录失败原因.
func (s *Store) MarkWithdrawalFailed(ctx context.Context, transactionID string, reason string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ledger_transactions SET status = $1, failure_reason = $2, updated_at = now() WHERE id = $3`,
		StatusFailed, reason, transactionID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to mark withdrawal failed")
	}

	return checkAffected(res, transactionID)
}

func checkAffected(res sql.Result, transactionID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.Errorf("ledger transaction %s not found", transactionID)
	}

	return nil
}
