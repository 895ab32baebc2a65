// Package main provides the entry point for quiver-server.
//
// quiver-server is a single-node in-memory key/value store with TTL
// eviction and periodic snapshot persistence behind an HTTP API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quiverdb/quiver/internal/core/service"
	"github.com/quiverdb/quiver/internal/infra/buildinfo"
	"github.com/quiverdb/quiver/internal/infra/confloader"
	"github.com/quiverdb/quiver/internal/infra/shutdown"
	"github.com/quiverdb/quiver/internal/server/config"
	"github.com/quiverdb/quiver/internal/server/httpserver"
	"github.com/quiverdb/quiver/internal/storage/kv"
	"github.com/quiverdb/quiver/internal/telemetry/logger"
	"github.com/quiverdb/quiver/internal/telemetry/metric"
	"github.com/quiverdb/quiver/internal/worker"
)

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newApp creates the CLI application.
func newApp() *cli.App {
	return &cli.App{
		Name:    "quiver-server",
		Usage:   "in-memory key/value store with TTL eviction and snapshot persistence",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (YAML)",
				EnvVars: []string{"QUIVER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"d"},
				Usage:   "Directory for shard snapshot files",
			},
			&cli.IntFlag{
				Name:  "shards",
				Usage: "Number of shards",
			},
			&cli.BoolFlag{
				Name:  "load",
				Usage: "Restore state from existing snapshots at startup",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address",
			},
			&cli.DurationFlag{
				Name:  "flush-interval",
				Usage: "Period between snapshot flush passes",
			},
			&cli.DurationFlag{
				Name:  "cleanup-interval",
				Usage: "Period between TTL cleanup passes",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: json, text",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	logger.SetDefault(log)

	log.Info("starting quiver-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"addr", cfg.Server.HTTP.Addr,
		"data_dir", cfg.Storage.DataDir,
		"shards", cfg.Storage.Shards,
	)

	metrics := metric.NewRegistry()

	store, err := initStore(cfg, log)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	svc := service.NewKVService(store, log, metrics)

	// Background maintenance loops
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	flusher := worker.NewFlusher(svc, cfg.Storage.FlushInterval, log)
	cleaner := worker.NewCleaner(svc, cfg.Storage.CleanupInterval, log)
	go flusher.Run(workerCtx)
	go cleaner.Run(workerCtx)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		KVService:   svc,
		Metrics:     metrics,
		Logger:      log,
		RateLimit:   cfg.Server.HTTP.RateLimit,
		RateBurst:   cfg.Server.HTTP.RateBurst,
		EnableAudit: true,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router,
		cfg.Server.HTTP.ReadTimeout, cfg.Server.HTTP.WriteTimeout)

	watcher, err := watchConfig(c.String("config"), log)
	if err != nil {
		log.Warn("config watcher disabled", "error", err)
	}

	// Shutdown hooks run in reverse order: HTTP first, then workers,
	// then a final flush so nothing written since the last pass is
	// lost.
	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("flushing store")
		return svc.Flush(ctx)
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("stopping maintenance workers")
		stopWorkers()
		if watcher != nil {
			watcher.Stop()
		}
		return nil
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig merges defaults, the optional config file, environment
// variables and CLI flags, then validates the result.
func loadConfig(c *cli.Context) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Flags win over file and environment
	overrides := map[string]any{}
	if c.IsSet("addr") {
		overrides["server.http.addr"] = c.String("addr")
	}
	if c.IsSet("directory") {
		overrides["storage.data_dir"] = c.String("directory")
	}
	if c.IsSet("shards") {
		overrides["storage.shards"] = c.Int("shards")
	}
	if c.IsSet("load") {
		overrides["storage.load"] = c.Bool("load")
	}
	if c.IsSet("flush-interval") {
		overrides["storage.flush_interval"] = c.Duration("flush-interval")
	}
	if c.IsSet("cleanup-interval") {
		overrides["storage.cleanup_interval"] = c.Duration("cleanup-interval")
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		overrides["log.format"] = c.String("log-format")
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initStore creates the sharded store, recovering from snapshots when
// load is enabled.
func initStore(cfg *config.ServerConfig, log logger.Logger) (*kv.Store, error) {
	if cfg.Storage.Load {
		start := time.Now()
		store, err := kv.NewFromDisk(cfg.Storage.Shards, cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		log.Info("recovered store from snapshots",
			"entries", store.Len(),
			"elapsed", time.Since(start),
		)
		return store, nil
	}

	return kv.New(cfg.Storage.Shards, cfg.Storage.DataDir)
}

// reloadConfig re-reads the config file over the defaults, the same
// merge order as startup, so a partial file that was accepted at boot
// is accepted again on reload.
func reloadConfig(path string) (*config.ServerConfig, error) {
	cfg := config.Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// watchConfig reloads the log level when the config file changes.
func watchConfig(path string, log logger.Logger) (*confloader.Watcher, error) {
	if path == "" {
		return nil, nil
	}

	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(log)))
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(changed string) {
		cfg, err := reloadConfig(path)
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level reloaded", "level", cfg.Log.Level)
	})

	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.StartAsync()
	return watcher, nil
}
