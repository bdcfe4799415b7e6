package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Journal pool limits.
const (
	journalMaxConns        = 4
	journalMaxConnIdleTime = 5 * time.Minute
	journalHealthCheck     = time.Minute
	journalApplicationName = "expocheckin-journal"
)

// poolConfig parses dsn and applies the journal pool settings. Settings
// given explicitly in the DSN (pool_max_conns, application_name) win.
func poolConfig(dsn string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > journalMaxConns {
		cfg.MaxConns = journalMaxConns
	}
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = journalMaxConnIdleTime
	cfg.HealthCheckPeriod = journalHealthCheck
	if cfg.ConnConfig.RuntimeParams["application_name"] == "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = journalApplicationName
	}
	return cfg, nil
}

// NewPool opens the journal connection pool and checks it answers.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping journal database: %w", err)
	}
	log.Printf("✅ Bitácora PostgreSQL conectada (max_conns=%d).", cfg.MaxConns)
	return pool, nil
}
