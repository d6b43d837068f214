package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting the API reads from the environment.
type Config struct {
	Port        string
	Environment string

	DatabaseURL string
	DBTimeout   time.Duration

	RedisAddr      string
	SearchCacheTTL time.Duration

	// JWTSecret signs identity tokens. The process refuses to start without it:
	// a missing secret must be a fatal startup condition, never a per-request error.
	JWTSecret   string
	TokenExpiry time.Duration

	// ProductKeySecret derives signup keys for privileged roles.
	ProductKeySecret string
}

// Load reads configuration from the environment. It returns an error for any
// missing required value so main can fail fast before opening connections.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		DBTimeout:      getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		SearchCacheTTL: getDurationEnv("SEARCH_CACHE_TTL_SEC", 30) * time.Second,
		TokenExpiry:    getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,
	}

	var err error
	if cfg.DatabaseURL, err = requireEnv("DATABASE_URL"); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret, err = requireEnv("JWT_SECRET_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.ProductKeySecret, err = requireEnv("PRODUCT_KEY_SECRET"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("config: %s must be set", key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(fallback)
	}
	return time.Duration(n)
}
