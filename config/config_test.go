package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/homeflow")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("PRODUCT_KEY_SECRET", "product-secret")
	t.Setenv("JWT_EXPIRY_MIN", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/homeflow", cfg.DatabaseURL)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.SearchCacheTTL)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/homeflow")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("PRODUCT_KEY_SECRET", "product-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/homeflow")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("PRODUCT_KEY_SECRET", "product-secret")
	t.Setenv("JWT_EXPIRY_MIN", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, cfg.TokenExpiry)
}
