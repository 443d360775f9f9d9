package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hollowdeep/garrison/internal/config"
	"github.com/hollowdeep/garrison/internal/database"
	"github.com/hollowdeep/garrison/internal/database/postgres"
	"github.com/hollowdeep/garrison/internal/handler"
	"github.com/hollowdeep/garrison/internal/logger"
	"github.com/hollowdeep/garrison/internal/player"
	"github.com/hollowdeep/garrison/internal/server"
	"github.com/hollowdeep/garrison/internal/storage"
	"github.com/hollowdeep/garrison/internal/storage/memory"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "garrison",
	})

	handler.InitValidator()

	var store storage.Store
	var dbPool database.Pool
	if cfg.UseMemoryStore() {
		slog.Warn("DB_HOST not set, using in-memory storage; state is lost on restart")
		store = memory.New()
	} else {
		pool, err := database.NewPool(cfg.GetDBConnString())
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		dbPool = pool
		store = postgres.NewStore(pool)
	}

	playerService := player.NewService(store, player.Config{
		AdminSecret:  cfg.AdminSecret,
		StrictWrites: cfg.StrictWrites,
		CacheSize:    cfg.ProfileCacheSize,
		CacheTTL:     cfg.ProfileCacheTTL,
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, playerService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Server stopped")
	}
}
