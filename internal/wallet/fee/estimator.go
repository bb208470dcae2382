package fee

import (
	"context"

	"github/chapool/tron-custody/internal/util"
	"github/chapool/tron-custody/internal/wallet/tron"
)

// BandwidthPriceSun is the burn price of one bandwidth point in Sun.
const BandwidthPriceSun = 10000

// Estimator approximates the bandwidth fee of a TRX transfer.
type Estimator interface {
	Estimate(ctx context.Context, from string, to string, amountSun int64) int64
}

type estimator struct {
	client tron.Client
}

//nolint:ireturn
func NewEstimator(client tron.Client) Estimator {
	return &estimator{client: client}
}

// Estimate 预估一笔转账需要燃烧的手续费 (Sun).
// 带宽需求按序列化交易字节数近似, 免费与质押带宽余额不足的部分按固定单价计费.
// 估算是尽力而为的: 任何错误都返回 0, 调用方应将 0 视为 "未知" 而非 "免费".
func (e *estimator) Estimate(ctx context.Context, from string, to string, amountSun int64) int64 {
	log := util.LogFromContext(ctx).With().Str("from", from).Str("to", to).Logger()

	tx, err := e.client.CreateTransaction(ctx, from, to, amountSun)
	if err != nil {
		log.Warn().Err(err).Msg("Fee estimation failed at transfer build, returning 0")

		return 0
	}

	// raw_data_hex 的字节数即带宽点数
	needed := int64((len(tx.RawDataHex) + 1) / 2)

	net, err := e.client.GetAccountNet(ctx, from)
	if err != nil {
		log.Warn().Err(err).Msg("Fee estimation failed at account net, returning 0")

		return 0
	}

	available := (net.FreeNetLimit - net.FreeNetUsed) + (net.NetLimit - net.NetUsed)
	if available < 0 {
		available = 0
	}

	deficit := needed - available
	if deficit <= 0 {
		return 0
	}

	return deficit * BandwidthPriceSun
}
