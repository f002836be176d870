package main

import (
	"TokenGate/internal/config"
	"TokenGate/internal/handlers"
	"TokenGate/internal/middleware"
	"TokenGate/internal/repo"
	"TokenGate/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tokenRepo, closeRepo, err := repo.Open(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize token store", "backend", cfg.StoreBackend, "error", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			sugar.Errorw("failed to close token store", "error", err)
		}
	}()

	tokenService := service.NewTokenService(tokenRepo)

	var reg *prometheus.Registry
	if cfg.EnableMetrics {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	h := handlers.NewHandler(tokenService, sugar, cfg, reg)

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"StoreBackend", cfg.StoreBackend,
		"EnableMetrics", cfg.EnableMetrics,
		"Debug", cfg.Debug,
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
