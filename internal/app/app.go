// Package app wires configuration into the dataset loader, cache backends and
// search engine shared by the API server and the CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iRail/stations/internal/cache"
	"github.com/iRail/stations/internal/config"
	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/search"
	"github.com/iRail/stations/internal/storage"
)

// App holds the long-lived components built from a Config.
type App struct {
	Config  *config.Config
	Logger  *observability.Logger
	Cache   cache.Client
	DB      *sql.DB
	Loader  *dataset.Loader
	Results *search.ResultCache
	Engine  *search.Engine
}

// New builds every component. The dataset is not read until the first
// search or an explicit Loader.Load.
func New(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	client, err := cache.New(CacheOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	a.Cache = client

	source, err := a.newSource(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Loader = dataset.NewLoader(source, client, logger)
	a.Results = search.NewResultCache(client, logger, cfg.Cache.TTL)
	a.Engine = search.NewEngine(a.Loader, a.Results, logger, search.Config{ResultCap: cfg.Search.ResultCap})

	logger.Info().
		Str("source", source.Name()).
		Str("cache", cfg.Cache.Driver).
		Int("result_cap", cfg.Search.ResultCap).
		Msg("Stations engine configured")

	return a, nil
}

func (a *App) newSource(ctx context.Context) (dataset.Source, error) {
	if a.Config.Dataset.Format != dataset.FormatSQL {
		return dataset.NewFileSource(a.Config.Dataset.Path, a.Config.Dataset.Format, a.Logger)
	}

	db, err := a.OpenDatabase(ctx)
	if err != nil {
		return nil, err
	}
	a.DB = db
	return dataset.NewSQLSource(a.Config.Database.Driver, storage.NewStationRepository(db)), nil
}

// OpenDatabase opens and migrates the configured SQL database.
func (a *App) OpenDatabase(ctx context.Context) (*sql.DB, error) {
	db, err := storage.Open(ctx, a.Config.Database.Driver, a.Config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// Close releases the cache backend and database connection.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

// CacheOptions maps the cache section onto backend options.
func CacheOptions(cfg *config.Config) cache.Config {
	return cache.Config{
		Driver:     cfg.Cache.Driver,
		MaxEntries: cfg.Cache.MaxEntries,
		Redis: cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
			Prefix:   cfg.Cache.Redis.Prefix,
		},
	}
}

// NewLogger builds the logger described by the observability section.
func NewLogger(cfg *config.Config, service string) *observability.Logger {
	if service == "" {
		service = cfg.Observability.ServiceName
	}
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: service,
	})
}
