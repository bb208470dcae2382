package withdraw

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github/chapool/tron-custody/internal/util"
	"github/chapool/tron-custody/internal/wallet/keystore"
	"github/chapool/tron-custody/internal/wallet/tron"
)

const (
	chainCurrency = "TRX"
	chainName     = "TRON"
)

var sunPerTRX = decimal.New(1, 6)

// Service executes custodial withdrawals: key retrieval, signing,
// broadcast and the resulting ledger status transition.
type Service interface {
	Withdraw(ctx context.Context, req Request, reporter Reporter) (string, error)
}

type service struct {
	client   tron.Client
	keystore keystore.Service
	ledger   Ledger
}

//nolint:ireturn
func NewService(client tron.Client, ks keystore.Service, ledger Ledger) Service {
	return &service{
		client:   client,
		keystore: ks,
		ledger:   ledger,
	}
}

// Withdraw 执行提现并返回链上交易哈希.
// 任一环节失败都会先把账本记录置为 FAILED 再向调用方返回错误,
// 外部系统即使不处理该错误也能通过轮询账本观察到失败.
func (s *service) Withdraw(ctx context.Context, req Request, reporter Reporter) (string, error) {
	if reporter == nil {
		reporter = NopReporter{}
	}

	log := util.LogFromContext(ctx).With().
		Str("transactionID", req.TransactionID).
		Str("walletID", req.WalletID).
		Logger()

	reporter.OnStep("start")

	txID, err := s.execute(ctx, req, reporter)
	if err != nil {
		log.Error().Err(err).Msg("Withdrawal failed")
		reporter.OnFail(err)

		if markErr := s.ledger.MarkWithdrawalFailed(ctx, req.TransactionID, err.Error()); markErr != nil {
			log.Error().Err(markErr).Msg("Failed to mark withdrawal failed")
		}

		return "", err
	}

	if err := s.ledger.MarkWithdrawalCompleted(ctx, req.TransactionID, txID); err != nil {
		log.Error().Err(err).Str("txID", txID).Msg("Failed to mark withdrawal completed")
		reporter.OnFail(err)

		return "", err
	}

	reporter.OnSuccess(txID)
	log.Info().Str("txID", txID).Msg("Withdrawal completed")

	return txID, nil
}

func (s *service) execute(ctx context.Context, req Request, reporter Reporter) (string, error) {
	secret, err := s.keystore.GetSecret(ctx, req.WalletID, chainCurrency, chainName)
	if err != nil {
		return "", err
	}

	privateKey, err := tron.PrivateKeyFromHex(secret.PrivateKey)
	if err != nil {
		return "", errors.Wrap(keystore.ErrDecrypt, "invalid private key material")
	}

	from := secret.Address
	if from == "" {
		from = tron.AddressFromPrivateKey(privateKey)
	}

	// 四舍五入到最接近的整数 Sun
	amountSun := req.Amount.Mul(sunPerTRX).Round(0).IntPart()
	if amountSun <= 0 {
		return "", errors.Errorf("withdraw: non-positive amount %s", req.Amount)
	}

	tx, err := s.client.CreateTransaction(ctx, from, req.ToAddress, amountSun)
	if err != nil {
		return "", errors.Wrap(err, "failed to build transfer")
	}

	if err := tron.SignTransaction(tx, privateKey); err != nil {
		return "", err
	}

	reporter.OnStep("broadcast")

	res, err := s.client.BroadcastTransaction(ctx, tx)
	if err != nil {
		return "", errors.Wrap(err, "failed to broadcast transaction")
	}
	if !res.Result {
		return "", errors.Wrapf(ErrBroadcastRejected, "code %s: %s", res.Code, res.Message)
	}

	return res.TxID, nil
}
