package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// LedgerConfig holds ledger node configuration
type LedgerConfig struct {
	RPCURL           string        `mapstructure:"rpc_url"`
	PackageID        string        `mapstructure:"package_id"`
	MarketplaceID    string        `mapstructure:"marketplace_id"`
	MinLeadTime      time.Duration `mapstructure:"min_lead_time"`
	ClockTTL         time.Duration `mapstructure:"clock_ttl"`
	ClockStaleWindow time.Duration `mapstructure:"clock_stale_window"`
	RPCRateLimit     float64       `mapstructure:"rpc_rate_limit"` // requests per second, 0 disables
	RPCBurst         int           `mapstructure:"rpc_burst"`
}

// PollerConfig holds confirmation poller configuration
type PollerConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

// PurchaseConfig holds purchase orchestration configuration
type PurchaseConfig struct {
	// ConfirmationMode is "optimistic" or "confirmed"
	ConfirmationMode string `mapstructure:"confirmation_mode"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// SweeperSettings holds transfer sweeper tuning
type SweeperSettings struct {
	Caller    string        `mapstructure:"caller"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Poller     PollerConfig   `mapstructure:"poller"`
	Purchase   PurchaseConfig `mapstructure:"purchase"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	TokensPath string         `mapstructure:"tokens_path"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CUSTODY_EVENTS")
	v.SetDefault("ledger.min_lead_time", "60s")
	v.SetDefault("ledger.clock_ttl", "5s")
	v.SetDefault("ledger.clock_stale_window", "60s")
	v.SetDefault("poller.attempts", 3)
	v.SetDefault("poller.delay", "2s")
	v.SetDefault("purchase.confirmation_mode", "optimistic")
	v.SetDefault("worker.pool_size", 20)
	v.SetDefault("worker.queue_size", 2048)
	v.SetDefault("tokens_path", "config/tokens.json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Ledger.RPCURL == "" {
		return nil, errors.New("ledger.rpc_url is required")
	}
	if config.Ledger.PackageID == "" {
		return nil, errors.New("ledger.package_id is required")
	}
	if mode := config.Purchase.ConfirmationMode; mode != "optimistic" && mode != "confirmed" {
		return nil, fmt.Errorf("invalid purchase.confirmation_mode: %s", mode)
	}

	return &config, nil
}

// SweeperConfig holds configuration for the transfer sweeper daemon
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Ledger     LedgerConfig    `mapstructure:"ledger"`
	Sweeper    SweeperSettings `mapstructure:"sweeper"`
}

// LoadSweeperConfig loads configuration for the transfer sweeper daemon
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CUSTODY_EVENTS")
	v.SetDefault("ledger.min_lead_time", "60s")
	v.SetDefault("ledger.clock_ttl", "5s")
	v.SetDefault("ledger.clock_stale_window", "60s")
	v.SetDefault("sweeper.interval", "30s")
	v.SetDefault("sweeper.batch_size", 50)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config SweeperConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Ledger.RPCURL == "" {
		return nil, errors.New("ledger.rpc_url is required")
	}
	if config.Ledger.PackageID == "" {
		return nil, errors.New("ledger.package_id is required")
	}
	if config.Sweeper.Caller == "" {
		return nil, errors.New("sweeper.caller is required")
	}

	return &config, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("CUSTODIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ledger
		"ledger.rpc_url",
		"ledger.package_id",
		"ledger.marketplace_id",
		"ledger.min_lead_time",
		"ledger.clock_ttl",
		"ledger.clock_stale_window",
		"ledger.rpc_rate_limit",
		"ledger.rpc_burst",
		// Poller
		"poller.attempts",
		"poller.delay",
		// Purchase
		"purchase.confirmation_mode",
		// Sweeper
		"sweeper.caller",
		"sweeper.interval",
		"sweeper.batch_size",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		"tokens_path",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
