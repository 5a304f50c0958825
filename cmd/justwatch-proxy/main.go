package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/LavaJover/justwatch-proxy/internal/app/background"
	"github.com/LavaJover/justwatch-proxy/internal/app/setup"
	"github.com/LavaJover/justwatch-proxy/internal/config"
	"github.com/LavaJover/justwatch-proxy/internal/delivery/http/router"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	logger := deps.Logger
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm up exchange rates
	if !cfg.ExchangeRates.DisableWarmup {
		background.NewBackgroundTasks(deps.Converter, logger).StartAll(ctx)
	}

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr(),
		Handler:      router.SetupRoutes(deps.Handlers.Proxy, deps.Handlers.Pricing, deps.Metrics, logger),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
