package deposit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github/chapool/tron-custody/internal/wallet/scan"
)

// Monitor 管理按 (walletID, address) 键控的充值轮询会话.
//
// 会话语义是一次性的: 处理完第一笔新充值后即注销并停止轮询,
// 不会继续监听同地址的后续充值. 调用方需要时重新发起监控.
type Monitor struct {
	scanner   scan.Scanner
	ledger    Ledger
	processor Processor
	interval  time.Duration

	sessions sync.Map // key: walletID|address

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMonitor(scanner scan.Scanner, ledger Ledger, processor Processor, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		scanner:   scanner,
		ledger:    ledger,
		processor: processor,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// MonitorDeposits 为 (wallet, address) 启动轮询会话, 即发即忘.
// 同键会话已存在时直接返回, 注册是原子的, 并发调用只会启动一个会话.
func (m *Monitor) MonitorDeposits(wallet Wallet, address string) {
	key := wallet.ID + "|" + address
	if _, loaded := m.sessions.LoadOrStore(key, struct{}{}); loaded {
		log.Debug().Str("walletID", wallet.ID).Str("address", address).Msg("Monitor session already active")

		return
	}

	m.wg.Add(1)
	activeSessions.Inc()
	go m.run(key, wallet, address)
}

// run 串行执行轮询: 下一次 tick 仅在当前 tick 结束后调度, 不会重叠.
func (m *Monitor) run(key string, wallet Wallet, address string) {
	defer m.wg.Done()
	defer m.sessions.Delete(key)
	defer activeSessions.Dec()

	logger := log.With().Str("walletID", wallet.ID).Str("address", address).Logger()
	ctx := logger.WithContext(m.ctx)

	logger.Info().Msg("Deposit monitor session started")

	for {
		if m.tick(ctx, wallet, address) {
			logger.Info().Msg("Deposit monitor session finished")

			return
		}

		select {
		case <-time.After(m.interval):
		case <-ctx.Done():
			logger.Info().Msg("Deposit monitor session cancelled")

			return
		}
	}
}

// tick 扫一轮链上数据, 处理第一笔尚未入账的成功充值.
// 返回 true 表示会话应当结束 (无论处理是否成功).
func (m *Monitor) tick(ctx context.Context, wallet Wallet, address string) bool {
	logger := log.Ctx(ctx)

	transactions, err := m.scanner.Scan(ctx, address)
	if err != nil {
		// 网络类故障降级为 "本轮无新数据", 下一轮重试
		logger.Warn().Err(err).Msg("Scan failed, retrying next tick")

		return false
	}

	for _, tx := range transactions {
		if tx.To != address || !tx.Success() {
			continue
		}

		exists, err := m.ledger.HasDepositTransaction(ctx, tx.Hash, wallet.UserID)
		if err != nil {
			logger.Warn().Err(err).Str("hash", tx.Hash).Msg("Ledger lookup failed, skipping candidate")

			continue
		}
		if exists {
			continue
		}

		// 处理失败也结束会话, 会话生命周期归 Monitor 所有
		if err := m.processor.Process(ctx, tx.Hash, wallet, address); err != nil {
			logger.Error().Err(err).Str("hash", tx.Hash).Msg("Deposit processing failed")
			processedDeposits.WithLabelValues("error").Inc()
		} else {
			processedDeposits.WithLabelValues("success").Inc()
		}

		return true
	}

	return false
}

// Stop cancels all running sessions and waits for them to exit.
func (m *Monitor) Stop() {
	m.cancel()
	m.wg.Wait()
}
