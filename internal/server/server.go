// Package server provides the main server initialization and run logic.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevgathuku/docue-stack-sub000/internal/api"
	"github.com/kevgathuku/docue-stack-sub000/internal/cache"
	"github.com/kevgathuku/docue-stack-sub000/internal/config"
	"github.com/kevgathuku/docue-stack-sub000/internal/db"
	"github.com/kevgathuku/docue-stack-sub000/internal/logger"
)

// Config holds the server start options.
type Config struct {
	Port    int    // Port to run the server on (0 = use config default)
	Version string // Version string to report
}

// Run starts the server with the given configuration and blocks until the
// context is canceled.
func Run(ctx context.Context, cfg Config) error {
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Port != 0 {
		appCfg.Server.Port = cfg.Port
	}

	logger.Init(appCfg.Log.Format, appCfg.Log.Level)
	slog.Info("Starting Docue server", "version", cfg.Version, "mode", appCfg.Server.Mode)

	database, err := db.New(appCfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Database initialized", "driver", appCfg.Database.Driver)

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations completed")

	if err := db.CreateDefaultAdmin(database); err != nil {
		return fmt.Errorf("failed to create default admin user: %w", err)
	}

	statsCache, err := createCache(appCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer statsCache.Close()
	slog.Info("Stats cache initialized", "type", appCfg.Cache.Type)

	router := api.NewRouter(appCfg, database, statsCache)

	addr := fmt.Sprintf(":%d", appCfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server stopped")

	return nil
}

// RunWithSignalHandling starts the server and handles OS signals for graceful shutdown.
func RunWithSignalHandling(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, cfg)
	}()

	select {
	case sig := <-quit:
		slog.Info("Received signal", "signal", sig)
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// createCache creates a stats cache based on configuration.
func createCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Type {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "valkey":
		if cfg.Cache.ValkeyAddr == "" {
			return nil, fmt.Errorf("valkey address is required when cache type is valkey")
		}
		return cache.NewValkeyCache(cfg.Cache.ValkeyAddr)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s (supported: memory, valkey)", cfg.Cache.Type)
	}
}
