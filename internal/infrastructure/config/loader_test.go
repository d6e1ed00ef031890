package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadFrom(t *testing.T) {
	t.Run("Defaults without a config file", func(t *testing.T) {
		cfg, err := loadFrom(Test, []string{t.TempDir()})

		require.NoError(t, err)
		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, 10, cfg.MCP.SearchLimit)
		assert.Equal(t, "/mcp/warrior", cfg.MCP.PublicPath)
		assert.Equal(t, "/mcp/admin", cfg.MCP.AdminPath)
		assert.False(t, cfg.MCP.Stateless)
		assert.Equal(t, int64(1<<20), cfg.MCP.MaxBodyBytes)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.False(t, cfg.Seed.DemoData)
	})

	t.Run("File values override defaults", func(t *testing.T) {
		dir := writeConfig(t, Test, `
server:
  port: 9090
database:
  host: ledger-db
  queryTimeout: 2
mcp:
  searchLimit: 5
seed:
  demoData: true
`)

		cfg, err := loadFrom(Test, []string{dir})

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "ledger-db", cfg.Database.Host)
		assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, 5, cfg.MCP.SearchLimit)
		assert.True(t, cfg.Seed.DemoData)
	})

	t.Run("Environment overrides file values", func(t *testing.T) {
		dir := writeConfig(t, Test, "database:\n  host: ledger-db\n")
		t.Setenv("FQ_DB_HOST", "override-db")
		t.Setenv("FQ_SERVER_PORT", "7070")
		t.Setenv("FQ_MCP_ADMIN_JWT_SECRET", "s3cret")
		t.Setenv("FQ_RATE_LIMIT_ENABLED", "true")
		t.Setenv("FQ_DB_MAX_OPEN_CONNS", "not-a-number")
		t.Setenv("FQ_MCP_STATELESS", "true")
		t.Setenv("FQ_MCP_MAX_BODY_BYTES", "4096")

		cfg, err := loadFrom(Test, []string{dir})

		require.NoError(t, err)
		assert.Equal(t, "override-db", cfg.Database.Host)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "s3cret", cfg.MCP.Admin.JWTSecret)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.True(t, cfg.MCP.Stateless)
		assert.Equal(t, int64(4096), cfg.MCP.MaxBodyBytes)
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		dir := writeConfig(t, Test, "server: [unterminated")

		_, err := loadFrom(Test, []string{dir})

		assert.Error(t, err)
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("FQ_ENV", "")
	assert.Equal(t, Development, getEnvironment())

	t.Setenv("FQ_ENV", "PRODUCTION")
	assert.Equal(t, Production, getEnvironment())
}

func TestDefaultReferenceData(t *testing.T) {
	data := DefaultReferenceData()

	assert.Equal(t, "> $2000", data.Guidelines.BalanceThresholds.Excellent)
	assert.Equal(t, int64(20000000), data.Limits.CurrencySupport.NGN.Max)
	assert.Equal(t, "$3000 USD equivalent", data.Limits.DailyLimits.Withdraw)
}
