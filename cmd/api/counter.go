package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/exam-tracker/internal/config"
	"github.com/pkordes/exam-tracker/internal/quota"
	"github.com/pkordes/exam-tracker/internal/repo"
	"github.com/pkordes/exam-tracker/migrations"
)

// newCounter builds the daily map counter selected by cfg.CounterBackend and
// returns a function releasing its connections.
func newCounter(ctx context.Context, cfg config.Config, log *slog.Logger) (quota.Counter, func(), error) {
	switch cfg.CounterBackend {
	case config.CounterMemory:
		log.Info("map counter: in-memory")
		return quota.NewMemory(), func() {}, nil

	case config.CounterRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("map counter: redis", "addr", opts.Addr, "db", opts.DB)
		return quota.NewRedis(client, cfg.Location), func() { _ = client.Close() }, nil

	case config.CounterPostgres:
		// New() does not open connections; the ping below does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("map counter: postgres")
		return repo.NewMapCounterRepo(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown counter backend %q", cfg.CounterBackend)
	}
}

// migrate applies pending goose migrations through a database/sql handle
// sharing pool's connections. The handle is not closed; the pool outlives it.
func migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
