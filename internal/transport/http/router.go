// Package httptransport assembles the public HTTP surface of the gateway.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	identifyHandler "secid-gateway/internal/identify/handler"
	"secid-gateway/internal/platform/health"
	"secid-gateway/internal/platform/metrics"
	"secid-gateway/internal/platform/middleware"
)

// RouterConfig carries everything the router needs to wire the endpoint tree.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Identify       *identifyHandler.Handler
	Health         *health.Handler
	RequestTimeout time.Duration

	// JWTSigningKey enables bearer token auth on /v1 when non-empty.
	JWTSigningKey string
	// APIKeyHash enables X-API-Key auth on /v1 when non-empty and no
	// signing key is configured.
	APIKeyHash string
}

// NewRouter wires all public endpoints with the middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.WithClientInfo)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// Probes and metrics stay outside auth and the JSON content-type gate.
	cfg.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.ContentTypeJSON)
		switch {
		case cfg.JWTSigningKey != "":
			v1.Use(middleware.BearerAuth([]byte(cfg.JWTSigningKey), cfg.Logger))
		case cfg.APIKeyHash != "":
			v1.Use(middleware.APIKey(cfg.APIKeyHash, cfg.Logger))
		}
		cfg.Identify.Register(v1)
	})

	return r
}
