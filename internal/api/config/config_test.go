package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
watchlist:
  free_limit: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Watchlist.FreeLimit)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 10*time.Minute, cfg.Watchlist.ValidationCacheTTL)
	assert.Equal(t, "yahoo", cfg.News.Provider)
	assert.Equal(t, "https://query1.finance.yahoo.com/v7/finance/quote", cfg.YahooFinance.QuoteURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
watchlist:
  free_limit: 20
auth:
  secret: from-file
rate_limit:
  trusted_proxies: ["10.0.0.0/8", "fd00::/8"]
`)
	t.Setenv("WATCHLIST_FREE_LIMIT", "25")
	t.Setenv("AUTH_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Watchlist.FreeLimit)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, []string{"10.0.0.0/8", "fd00::/8"}, cfg.RateLimit.TrustedProxies)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Watchlist.FreeLimit)
}
