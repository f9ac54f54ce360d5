package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identifyHandler "secid-gateway/internal/identify/handler"
	identifyMetrics "secid-gateway/internal/identify/metrics"
	"secid-gateway/internal/identify/service"
	"secid-gateway/internal/identify/tracer"
	"secid-gateway/internal/platform/config"
	"secid-gateway/internal/platform/health"
	"secid-gateway/internal/platform/httpserver"
	"secid-gateway/internal/platform/logger"
	platformMetrics "secid-gateway/internal/platform/metrics"
	httptransport "secid-gateway/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the identify service.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing secid-gateway",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"batch_limit", cfg.BatchLimit,
		"auth", cfg.JWTSigningKey != "" || cfg.APIKeyHash != "",
	)

	svc := service.NewService(log,
		service.WithMetrics(identifyMetrics.New()),
		service.WithTracer(tracer.NewOTel()),
		service.WithBatchLimit(cfg.BatchLimit),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("scheme_registry", health.RegistryCheck())

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        platformMetrics.New(),
		Identify:       identifyHandler.New(svc, log),
		Health:         healthHandler,
		RequestTimeout: cfg.RequestTimeout,
		JWTSigningKey:  cfg.JWTSigningKey,
		APIKeyHash:     cfg.APIKeyHash,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
