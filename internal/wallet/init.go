package wallet

import (
	"database/sql"
	"net/http"

	"github/chapool/tron-custody/internal/config"
	"github/chapool/tron-custody/internal/wallet/deposit"
	"github/chapool/tron-custody/internal/wallet/fee"
	"github/chapool/tron-custody/internal/wallet/keystore"
	"github/chapool/tron-custody/internal/wallet/ledger"
	"github/chapool/tron-custody/internal/wallet/scan"
	"github/chapool/tron-custody/internal/wallet/tron"
	"github/chapool/tron-custody/internal/wallet/withdraw"
)

// InitService wires the wallet core from configuration. Construction
// fails fast on configuration errors (bad node URL, unusable key
// material) before any request is served.
//
//nolint:ireturn
func InitService(cfg config.Server, db *sql.DB) (Service, error) {
	client, err := tron.NewClient(cfg.Tron.NodeURL, cfg.Tron.APIKey, cfg.Tron.RequestTimeout)
	if err != nil {
		return nil, err
	}

	masterKey, err := keystore.KeyFromConfig(cfg.Keystore.MasterKey, cfg.Keystore.Passphrase, cfg.Keystore.ScryptSaltHex)
	if err != nil {
		return nil, err
	}
	crypter, err := keystore.NewCrypter(masterKey)
	if err != nil {
		return nil, err
	}
	keystoreService := keystore.NewService(db, crypter)

	ledgerStore := ledger.NewStore(db)

	scanner := scan.NewScanner(client, scan.NewMemoryCursorStore(), cfg.Wallet.BlockBatchSize)
	cache := scan.NewCache(cfg.Wallet.CacheExpirationMinutes, nil)

	var notifier deposit.Notifier = deposit.NopNotifier{}
	if cfg.Wallet.DepositWebhookURL != "" {
		notifier = deposit.NewWebhookNotifier(cfg.Wallet.DepositWebhookURL, http.DefaultClient)
	}

	processor := deposit.NewProcessor(client, notifier)
	monitor := deposit.NewMonitor(scanner, ledgerStore, processor, cfg.Wallet.MonitorInterval)

	withdrawService := withdraw.NewService(client, keystoreService, ledgerStore)
	estimator := fee.NewEstimator(client)

	return NewService(client, scanner, cache, monitor, withdrawService, estimator, keystoreService), nil
}
