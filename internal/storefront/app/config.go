package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer     string // Issuer claim for session tokens (default: storefront)
	JWTSecret  string // Required: HMAC secret for signing session tokens (min 32 bytes)
	TOTPIssuer string // Label shown in authenticator apps (default: Storefront)

	DatabaseFile        string        // Path to SQLite database file (default: ./storefront.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingJWTSecret is returned when STOREFRONT_JWT_SECRET is unset.
// There is no safe default for signing key material.
var ErrMissingJWTSecret = errors.New("STOREFRONT_JWT_SECRET must be set")

func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:              getEnvOrDefault("STOREFRONT_ISSUER", "storefront"),
		JWTSecret:           os.Getenv("STOREFRONT_JWT_SECRET"),
		TOTPIssuer:          getEnvOrDefault("STOREFRONT_TOTP_ISSUER", "Storefront"),
		DatabaseFile:        getEnvOrDefault("STOREFRONT_DATABASE_FILE", "storefront.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
