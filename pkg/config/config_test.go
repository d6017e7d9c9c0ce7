package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 15*time.Minute, cfg.Auth.MagicLinkTTL)
	assert.Equal(t, 24*time.Hour, cfg.Assets.URLTTL)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.Assets.MaxUploadBytes)
}

func TestLoadCapsCatalogCacheTTLAtAssetURLTTL(t *testing.T) {
	t.Setenv("ASSETS_URL_TTL", "1h")
	t.Setenv("CATALOG_CACHE_TTL", "48h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Assets.URLTTL)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
}

func TestLoadKeepsShorterCatalogCacheTTL(t *testing.T) {
	t.Setenv("ASSETS_URL_TTL", "24h")
	t.Setenv("CATALOG_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
}
