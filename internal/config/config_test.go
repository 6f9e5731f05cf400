package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sessions", cfg.StoreDir)
	assert.Equal(t, 5*time.Second, cfg.ReconnectDelay.Std())
	assert.Equal(t, "0", cfg.Format.TrunkPrefix)
	assert.Equal(t, "549", cfg.Format.CountryPrefix)
	assert.Equal(t, "15", cfg.Format.MobileMarker)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_dir: /var/lib/vw
reconnect_delay: 10s
format:
  trunk_prefix: "0"
  country_prefix: "521"
  mobile_marker: "1"
redis_addr: localhost:6379
cache_ttl: 24h
metrics_addr: ":9321"
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/vw", cfg.StoreDir)
	assert.Equal(t, 10*time.Second, cfg.ReconnectDelay.Std())
	assert.Equal(t, "521", cfg.Format.CountryPrefix)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL.Std())
	assert.Equal(t, ":9321", cfg.MetricsAddr)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reconnect_delay: [nope"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reconnect_delay: banana"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
