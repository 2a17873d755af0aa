package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/platform/cache"
	"github.com/userhub/userhub/internal/platform/postgres"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/store"
)

// application bundles the long-lived dependencies of the server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	redisClient *redis.Client
	userService *service.UserService
}

// newApplication opens the database, applies pending migrations,
// dials the cache (or wires the no-op cache) and builds the service
// graph.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeQuietly(db, log)
		return nil, err
	}

	userCache, redisClient, err := setupCache(cfg, log)
	if err != nil {
		closeQuietly(db, log)
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	userService := service.NewUserService(
		userStore,
		userCache,
		service.NewBcryptHasher(),
		log,
	)

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		redisClient: redisClient,
		userService: userService,
	}, nil
}

// setupCache dials Redis when the cache is enabled, and falls back to
// the no-op cache otherwise. The returned client is nil in the no-op
// configuration.
func setupCache(cfg *config.Config, log *slog.Logger) (store.UserCache, *redis.Client, error) {
	if !cfg.Cache.Enabled {
		log.Info("cache disabled, using no-op cache")
		return cache.NewNoopCache(), nil, nil
	}

	opts, err := redis.ParseURL(cfg.Cache.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse cache URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	log.Info("cache connection established")

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return cache.NewUserCache(client, ttl), client, nil
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("failed to close cache connection", "error", err)
		}
	}
	closeQuietly(app.db, app.logger)
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", "error", err)
	}
}
