package config

import (
	"fmt"
	"time"

	"github/chapool/tron-custody/internal/util"
)

// Database holds the connection settings for the external relational store.
type Database struct {
	Host     string
	Port     int
	Username string
	Password string `json:"-"` // sensitive
	Database string
	SSLMode  string
}

// ConnectionString builds a lib/pq compatible DSN.
func (d Database) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
}

// EchoServer configures the HTTP listener.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnablePrometheusMiddleware     bool
}

// LoggerServer configures zerolog.
type LoggerServer struct {
	Level              string
	PrettyPrintConsole bool
}

// Tron configures the chain client adapter.
type Tron struct {
	NodeURL        string
	APIKey         string `json:"-"` // sensitive
	RequestTimeout time.Duration
}

// Wallet configures the scanning / monitoring pipeline.
type Wallet struct {
	BlockBatchSize         int
	CacheExpirationMinutes int
	MonitorInterval        time.Duration
	DepositWebhookURL      string // empty selects the no-op deposit notifier
}

// Keystore configures wallet-secret decryption. Either MasterKey (base64,
// 32 bytes decoded) is set, or the key is derived at startup from a
// passphrase via scrypt (prompted when PassphraseEnv is empty too).
type Keystore struct {
	MasterKey     string `json:"-"` // sensitive
	Passphrase    string `json:"-"` // sensitive
	ScryptSaltHex string
}

// Server is the root configuration, assembled from ENV.
type Server struct {
	Database Database
	Echo     EchoServer
	Logger   LoggerServer
	Tron     Tron
	Wallet   Wallet
	Keystore Keystore
}

// DefaultServiceConfigFromEnv returns the server config as parsed from
// the environment, with development-friendly defaults.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			Database: util.GetEnv("PGDATABASE", "custody"),
			SSLMode:  util.GetEnv("PGSSLMODE", "disable"),
		},
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnablePrometheusMiddleware:     util.GetEnvAsBool("SERVER_ECHO_ENABLE_PROMETHEUS_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.GetEnv("SERVER_LOGGER_LEVEL", "debug"),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Tron: Tron{
			NodeURL:        util.GetEnv("SERVER_TRON_NODE_URL", "https://api.shasta.trongrid.io"),
			APIKey:         util.GetEnv("SERVER_TRON_API_KEY", ""),
			RequestTimeout: time.Duration(util.GetEnvAsInt("SERVER_TRON_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Wallet: Wallet{
			BlockBatchSize:         util.GetEnvAsInt("SERVER_WALLET_BLOCK_BATCH_SIZE", 10),
			CacheExpirationMinutes: util.GetEnvAsInt("SERVER_WALLET_CACHE_EXPIRATION_MINUTES", 30),
			MonitorInterval:        time.Duration(util.GetEnvAsInt("SERVER_WALLET_MONITOR_INTERVAL_SECONDS", 60)) * time.Second,
			DepositWebhookURL:      util.GetEnv("SERVER_WALLET_DEPOSIT_WEBHOOK_URL", ""),
		},
		Keystore: Keystore{
			MasterKey:     util.GetEnv("SERVER_KEYSTORE_MASTER_KEY", ""),
			Passphrase:    util.GetEnv("SERVER_KEYSTORE_PASSPHRASE", ""),
			ScryptSaltHex: util.GetEnv("SERVER_KEYSTORE_SCRYPT_SALT_HEX", "746f6e2d637573746f64792d7631"),
		},
	}
}
