package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/paisa-pay/paisa_pay/internal/config"
	"github.com/paisa-pay/paisa_pay/internal/logging"
	"github.com/paisa-pay/paisa_pay/internal/server"
	"github.com/paisa-pay/paisa_pay/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close storage", "error", err)
		}
	}()

	srv, err := server.New(cfg, store, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}

// openStorage picks the persistence backend: Postgres or Redis when
// configured, the local SQLite file otherwise. An empty STORAGE_PATH
// keeps everything in memory.
func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch {
	case cfg.DatabaseURL != "":
		logger.Info("using postgres storage")
		return storage.NewPostgres(ctx, cfg.DatabaseURL)
	case cfg.RedisURL != "":
		logger.Info("using redis storage")
		return storage.NewRedis(ctx, cfg.RedisURL)
	case cfg.StoragePath != "":
		logger.Info("using sqlite storage", "path", cfg.StoragePath)
		return storage.NewSQLite(cfg.StoragePath)
	default:
		logger.Info("using in-memory storage; state will not survive restarts")
		return storage.NewMemory(), nil
	}
}
