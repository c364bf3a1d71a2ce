package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/config"
	"github.com/repstack/repstack/internal/database"
	"github.com/repstack/repstack/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize application with Wire-generated dependency injection
	app, err := InitializeApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer app.Cleanup()
	defer app.Logger.Sync()

	// Initialize request validator
	validator.Init()

	app.Logger.Info("starting RepStack server",
		zap.String("environment", cfg.Server.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	// Run pending database migrations
	if err := database.RunMigrations(&database.MigrateConfig{
		DatabaseURL: cfg.Postgres.URL(),
		Logger:      app.Logger,
	}); err != nil {
		app.Logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Start background services (analytics schema, batch writer)
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.Start(startCtx); err != nil {
		startCancel()
		app.Logger.Fatal("failed to start background services", zap.Error(err))
	}
	startCancel()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		app.Logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Fatal("HTTP server forced shutdown", zap.Error(err))
	}

	// Drain the batch writer and flush remaining analytics rows
	if app.BatchWriter != nil && app.BatchWriter.Writer != nil {
		app.Logger.Info("stopping set batch writer...")
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 15*time.Second)
		app.Stop(flushCtx)
		flushCancel()

		written, flushes, errCount := app.BatchWriter.Writer.Metrics()
		app.Logger.Info("set batch writer final metrics",
			zap.Int64("sets_written", written),
			zap.Int64("flush_count", flushes),
			zap.Int64("error_count", errCount),
		)
	}

	app.Logger.Info("server stopped")
}
