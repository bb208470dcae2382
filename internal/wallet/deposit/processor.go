package deposit

import (
	"context"

	"github.com/pkg/errors"

	"github/chapool/tron-custody/internal/util"
	"github/chapool/tron-custody/internal/wallet/scan"
	"github/chapool/tron-custody/internal/wallet/tron"
)

// Processor turns a confirmed on-chain deposit into a ledger notification.
type Processor interface {
	Process(ctx context.Context, hash string, wallet Wallet, address string) error
}

type processor struct {
	client   tron.Client
	notifier Notifier
}

//nolint:ireturn
func NewProcessor(client tron.Client, notifier Notifier) Processor {
	return &processor{
		client:   client,
		notifier: notifier,
	}
}

// Process 拉取交易详情与回执, 构造标准化充值事件并回调记账方一次.
func (p *processor) Process(ctx context.Context, hash string, wallet Wallet, address string) error {
	log := util.LogFromContext(ctx).With().Str("hash", hash).Str("walletID", wallet.ID).Logger()

	info, err := p.client.GetTransactionInfoByID(ctx, hash)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction info")
	}

	tx, err := p.client.GetTransactionByID(ctx, hash)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction details")
	}

	tx.Fee = info.Fee
	tx.BlockNumber = info.BlockNumber
	tx.BlockTimestamp = info.BlockTimeStamp

	parsed := scan.ParseTransaction(tx)

	event := Event{
		Chain:  chainName,
		Hash:   hash,
		Type:   eventType,
		From:   parsed.From,
		To:     address,
		Amount: parsed.Amount,
		Fee:    parsed.Fee,
		Status: statusCompleted,
	}

	if err := p.notifier.NotifyDeposit(ctx, event); err != nil {
		return errors.Wrap(err, "failed to notify deposit")
	}

	log.Info().Str("amount", parsed.Amount).Msg("Deposit processed")

	return nil
}
