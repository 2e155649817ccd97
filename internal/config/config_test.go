package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func TestLoadAPIConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  rpc_url: "https://rpc.example.test"
  package_id: "0xpkg"
`)

	cfg, err := config.LoadAPIConfig(path, t.TempDir())
	assert.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 120, cfg.Server.IdleTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "CUSTODY_EVENTS", cfg.NATS.StreamName)
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	assert.Equal(t, 60*time.Second, cfg.Ledger.MinLeadTime)
	assert.Equal(t, 5*time.Second, cfg.Ledger.ClockTTL)
	assert.Equal(t, 60*time.Second, cfg.Ledger.ClockStaleWindow)
	assert.Equal(t, 3, cfg.Poller.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Poller.Delay)
	assert.Equal(t, "optimistic", cfg.Purchase.ConfirmationMode)
	assert.Equal(t, 20, cfg.Worker.PoolSize)
	assert.Equal(t, "config/tokens.json", cfg.TokensPath)
}

func TestLoadAPIConfig_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
debug: true
server:
  port: 9090
ledger:
  rpc_url: "https://rpc.example.test"
  package_id: "0xpkg"
  marketplace_id: "0xmkt"
  min_lead_time: "90s"
poller:
  attempts: 5
  delay: "500ms"
purchase:
  confirmation_mode: "confirmed"
auth:
  api_keys:
    - "key-one"
    - "key-two"
tokens_path: "testdata/tokens.json"
`)

	cfg, err := config.LoadAPIConfig(path, t.TempDir())
	assert.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0xmkt", cfg.Ledger.MarketplaceID)
	assert.Equal(t, 90*time.Second, cfg.Ledger.MinLeadTime)
	assert.Equal(t, 5, cfg.Poller.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Poller.Delay)
	assert.Equal(t, "confirmed", cfg.Purchase.ConfirmationMode)
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
	assert.Equal(t, "testdata/tokens.json", cfg.TokensPath)
}

func TestLoadAPIConfig_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  rpc_url: "https://rpc.example.test"
  package_id: "0xpkg"
`)

	t.Setenv("CUSTODIAN_SERVER_PORT", "7001")
	t.Setenv("CUSTODIAN_LEDGER_RPC_URL", "https://override.example.test")

	cfg, err := config.LoadAPIConfig(path, t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "https://override.example.test", cfg.Ledger.RPCURL)
}

func TestLoadAPIConfig_MissingRPCURL(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  package_id: "0xpkg"
`)

	_, err := config.LoadAPIConfig(path, t.TempDir())
	assert.ErrorContains(t, err, "ledger.rpc_url is required")
}

func TestLoadAPIConfig_MissingPackageID(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  rpc_url: "https://rpc.example.test"
`)

	_, err := config.LoadAPIConfig(path, t.TempDir())
	assert.ErrorContains(t, err, "ledger.package_id is required")
}

func TestLoadAPIConfig_InvalidConfirmationMode(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  rpc_url: "https://rpc.example.test"
  package_id: "0xpkg"
purchase:
  confirmation_mode: "eventually"
`)

	_, err := config.LoadAPIConfig(path, t.TempDir())
	assert.ErrorContains(t, err, "invalid purchase.confirmation_mode")
}

func TestLoadSweeperConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  rpc_url: "https://rpc.example.test"
  package_id: "0xpkg"
sweeper:
  caller: "0xexec"
`)

	cfg, err := config.LoadSweeperConfig(path, t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, "0xexec", cfg.Sweeper.Caller)
	assert.Equal(t, 30*time.Second, cfg.Sweeper.Interval)
	assert.Equal(t, 50, cfg.Sweeper.BatchSize)
}

func TestLoadSweeperConfig_MissingCaller(t *testing.T) {
	path := writeConfigFile(t, `
ledger:
  rpc_url: "https://rpc.example.test"
  package_id: "0xpkg"
`)

	_, err := config.LoadSweeperConfig(path, t.TempDir())
	assert.ErrorContains(t, err, "sweeper.caller is required")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "custodian",
		Password: "secret",
		DBName:   "custody",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=custodian password=secret dbname=custody sslmode=disable",
		cfg.DSN())
}
