package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github/chapool/tron-custody/internal/util"
	"github/chapool/tron-custody/internal/wallet/deposit"
	"github/chapool/tron-custody/internal/wallet/fee"
	"github/chapool/tron-custody/internal/wallet/keystore"
	"github/chapool/tron-custody/internal/wallet/scan"
	"github/chapool/tron-custody/internal/wallet/tron"
	"github/chapool/tron-custody/internal/wallet/withdraw"
)

const (
	chainCurrency = "TRX"
	chainName     = "TRON"
)

var sunPerTRX = decimal.New(1, 6)

// Service 是托管钱包核心的对外门面.
type Service interface {
	CreateWallet(ctx context.Context) (*NewWallet, error)
	FetchTransactions(ctx context.Context, address string) []scan.ParsedTransaction
	GetBalance(ctx context.Context, address string) (string, error)
	IsAddressActivated(ctx context.Context, address string) (bool, error)
	MonitorDeposits(wallet deposit.Wallet, address string)
	HandleWithdrawal(ctx context.Context, req withdraw.Request, reporter withdraw.Reporter) (string, error)
	EstimateFee(ctx context.Context, from string, to string, amountSun int64) int64
	Stop()
}

type service struct {
	client    tron.Client
	scanner   scan.Scanner
	cache     *scan.Cache
	monitor   *deposit.Monitor
	withdraw  withdraw.Service
	estimator fee.Estimator
	keystore  keystore.Service
}

//nolint:ireturn
func NewService(
	client tron.Client,
	scanner scan.Scanner,
	cache *scan.Cache,
	monitor *deposit.Monitor,
	withdrawService withdraw.Service,
	estimator fee.Estimator,
	keystoreService keystore.Service,
) Service {
	return &service{
		client:    client,
		scanner:   scanner,
		cache:     cache,
		monitor:   monitor,
		withdraw:  withdrawService,
		estimator: estimator,
		keystore:  keystoreService,
	}
}

// CreateWallet 生成新的托管钱包并加密保存密钥材料.
func (s *service) CreateWallet(ctx context.Context) (*NewWallet, error) {
	generated, err := tron.GenerateWallet()
	if err != nil {
		return nil, err
	}

	walletID := uuid.New().String()

	err = s.keystore.SaveSecret(ctx, walletID, chainCurrency, chainName, &keystore.Secret{
		PrivateKey: generated.PrivateKey,
		Address:    generated.Address,
		Mnemonic:   generated.Mnemonic,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store wallet secret")
	}

	util.LogFromContext(ctx).Info().Str("walletID", walletID).Str("address", generated.Address).Msg("Wallet created")

	return &NewWallet{
		ID:             walletID,
		Address:        generated.Address,
		Mnemonic:       generated.Mnemonic,
		PublicKey:      generated.PublicKey,
		PrivateKey:     generated.PrivateKey,
		DerivationPath: generated.DerivationPath,
	}, nil
}

// FetchTransactions 返回地址的入账交易, 命中缓存则直接返回.
// 缓存只是性能辅助, 扫描失败降级为空结果, 不向调用方抛错.
func (s *service) FetchTransactions(ctx context.Context, address string) []scan.ParsedTransaction {
	if cached, ok := s.cache.Get(address); ok {
		return cached
	}

	transactions, err := s.scanner.Scan(ctx, address)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Str("address", address).Msg("Scan failed, serving empty result")

		return []scan.ParsedTransaction{}
	}
	if transactions == nil {
		transactions = []scan.ParsedTransaction{}
	}

	s.cache.Set(address, transactions)

	return transactions
}

// GetBalance 查询地址余额, 返回 TRX 十进制字符串. 未激活地址余额为 "0".
func (s *service) GetBalance(ctx context.Context, address string) (string, error) {
	account, err := s.client.GetAccount(ctx, address)
	if err != nil {
		if errors.Is(err, tron.ErrNotFound) {
			return "0", nil
		}

		return "", err
	}

	return decimal.NewFromInt(account.Balance).Div(sunPerTRX).String(), nil
}

// IsAddressActivated 判断地址是否已在链上出现过.
func (s *service) IsAddressActivated(ctx context.Context, address string) (bool, error) {
	_, err := s.client.GetAccount(ctx, address)
	if err != nil {
		if errors.Is(err, tron.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// MonitorDeposits 启动充值监控会话, 即发即忘.
func (s *service) MonitorDeposits(wallet deposit.Wallet, address string) {
	s.monitor.MonitorDeposits(wallet, address)
}

// HandleWithdrawal 执行提现, 返回链上交易哈希.
func (s *service) HandleWithdrawal(ctx context.Context, req withdraw.Request, reporter withdraw.Reporter) (string, error) {
	return s.withdraw.Withdraw(ctx, req, reporter)
}

// EstimateFee 预估转账手续费 (Sun), 失败时返回 0.
func (s *service) EstimateFee(ctx context.Context, from string, to string, amountSun int64) int64 {
	return s.estimator.Estimate(ctx, from, to, amountSun)
}

// Stop terminates all monitor sessions and waits for them to drain.
func (s *service) Stop() {
	s.monitor.Stop()
}
