package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "http://localhost:8000", cfg.ShopAPIURL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 30*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, int64(1<<20), cfg.MaxStateBytes)
	assert.Equal(t, int64(3<<20), cfg.MaxUploadBytes)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SHOP_API_URL", "http://shop:9000")
	t.Setenv("INDEX_CACHE_TTL", "2m")
	t.Setenv("RATE_LIMIT_MAX", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://shop:9000", cfg.ShopAPIURL)
	assert.Equal(t, 2*time.Minute, cfg.IndexCacheTTL)
	assert.Equal(t, 3, cfg.RateLimitMax)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_ProductionWithDefaultSecret_Error(t *testing.T) {
	cfg := &Config{
		Environment:    "production",
		ShopAPIURL:     "http://shop",
		RateLimitMax:   10,
		MaxStateBytes:  1024,
		MaxUploadBytes: 1024,
		JWTSecret:      defaultJWTSecret,
	}
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET must be changed")
}

func TestValidate_ProductionWithCustomSecret_OK(t *testing.T) {
	cfg := &Config{
		Environment:    "production",
		ShopAPIURL:     "http://shop",
		RateLimitMax:   10,
		MaxStateBytes:  1024,
		MaxUploadBytes: 1024,
		JWTSecret:      "a-real-secret",
	}
	assert.NoError(t, cfg.validate())
}

func TestValidate_NonPositiveRateLimit_Error(t *testing.T) {
	cfg := &Config{
		Environment:    "development",
		ShopAPIURL:     "http://shop",
		MaxStateBytes:  1024,
		MaxUploadBytes: 1024,
	}
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_MAX")
}

func TestValidate_UploadLimitMustBePositive(t *testing.T) {
	cfg := &Config{
		Environment:    "development",
		ShopAPIURL:     "http://shop",
		RateLimitMax:   10,
		MaxStateBytes:  1024,
		MaxUploadBytes: 0,
	}
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_UPLOAD_BYTES")
}
