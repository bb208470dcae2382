package withdraw

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrBroadcastRejected marks a signed transaction the chain refused.
var ErrBroadcastRejected = errors.New("withdraw: broadcast rejected")

// Request 描述一笔待执行的提现.
type Request struct {
	TransactionID string          // 外部账本的提现记录 ID
	WalletID      string
	Amount        decimal.Decimal // TRX
	ToAddress     string
}

// Reporter receives progress callbacks during withdrawal execution.
// It is a capability, not a dependency: pass NopReporter when the caller
// does not care, control flow is identical either way.
type Reporter interface {
	OnStep(step string)
	OnSuccess(txID string)
	OnFail(err error)
}

// NopReporter ignores all progress events.
type NopReporter struct{}

func (NopReporter) OnStep(string)    {}
func (NopReporter) OnSuccess(string) {}
func (NopReporter) OnFail(error)     {}

// Ledger persists the withdrawal status transitions.
type Ledger interface {
	MarkWithdrawalCompleted(ctx context.Context, transactionID string, chainTxID string) error
	MarkWithdrawalFailed(ctx context.Context, transactionID string, reason string) error
}
