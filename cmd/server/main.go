// Package main implements the entry point for the userhub API server,
// a CRUD service for user records backed by PostgreSQL with an
// optional Redis cache.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "userhub: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application together and serves
// until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_enabled", cfg.Cache.Enabled)

	app, err := newApplication(cfg, log)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
