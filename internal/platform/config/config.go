package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"secid-gateway/internal/platform/logger"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	Environment    string
	LogLevel       slog.Level
	RequestTimeout time.Duration

	// JWTSigningKey enables bearer-token auth on the API when non-empty.
	JWTSigningKey string
	// APIKeyHash is a bcrypt hash of the shared API key; enables X-API-Key
	// auth when non-empty. Generate with `tokengen hash`.
	APIKeyHash string

	// BatchLimit bounds both the size of a batch validation request and
	// its fan-out concurrency.
	BatchLimit int
}

// Defaults kept in one place so tokengen and tests agree with the server.
const (
	DefaultAddr           = ":8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultBatchLimit     = 16
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:           DefaultAddr,
		Environment:    "dev",
		LogLevel:       logger.ParseLevel(os.Getenv("SECID_LOG_LEVEL")),
		RequestTimeout: DefaultRequestTimeout,
		JWTSigningKey:  os.Getenv("SECID_JWT_SIGNING_KEY"),
		APIKeyHash:     os.Getenv("SECID_API_KEY_HASH"),
		BatchLimit:     DefaultBatchLimit,
	}
	if addr := os.Getenv("SECID_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if env := os.Getenv("SECID_ENV"); env != "" {
		cfg.Environment = env
	}
	if raw := os.Getenv("SECID_REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if raw := os.Getenv("SECID_BATCH_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.BatchLimit = n
		}
	}
	return cfg
}
