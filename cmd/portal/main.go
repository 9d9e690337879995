package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Rea1521/mahlangu-capital-bank/internal/api"
	"github.com/Rea1521/mahlangu-capital-bank/internal/config"
	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/restapi"
	"github.com/Rea1521/mahlangu-capital-bank/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	if cfg.Env == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()
	appLogger.Info("Customer Portal starting...", zap.String("backend", cfg.BackendBaseURL))

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := restapi.New(cfg.BackendBaseURL, httpClient, appLogger.With(zap.String("component", "BankingAPIClient")))

	sessions := session.NewStore(cfg.SessionTTL)
	handler := api.NewHandler(client, sessions, cfg, appLogger.With(zap.String("component", "PortalAPI")))

	go func() {
		ticker := time.NewTicker(cfg.SessionTTL)
		defer ticker.Stop()
		for range ticker.C {
			if dropped := handler.SweepExpired(); dropped > 0 {
				appLogger.Info("expired sessions swept", zap.Int("count", dropped))
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	api.RegisterRoutes(r, handler)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Customer Portal listening", zap.String("address", cfg.ListenAddr))

	<-sigChan

	appLogger.Info("Shutting down Customer Portal...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Customer Portal graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Customer Portal stopped.")
}
