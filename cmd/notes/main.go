package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/syntrixbase/notes/internal/config"
	"github.com/syntrixbase/notes/internal/logging"
	"github.com/syntrixbase/notes/internal/services"
)

func main() {
	configDir := flag.String("config", "config", "Directory holding config.yml and config.local.yml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Shutdown()

	if err := run(cfg); err != nil {
		slog.Error("Notes service exited with error", "error", err)
		logging.Shutdown()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slog.Info("Starting notes service",
		"http_port", cfg.Server.HTTPPort,
		"database", cfg.Storage.Mongo.DatabaseName,
		"relay", cfg.Relay.Enabled)

	mgr := services.NewManager(cfg, slog.Default())

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mgr.Init(initCtx); err != nil {
		mgr.Shutdown(context.Background())
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	mgr.Start(bgCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case runErr = <-mgr.Failed():
	}

	slog.Info("Shutting down services...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	bgCancel()
	mgr.Shutdown(shutdownCtx)

	slog.Info("All services stopped")
	return runErr
}
