package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectAttempts = 6
	initialBackoff  = time.Second
	maxBackoff      = 8 * time.Second
)

// Options tunes pool sizing. Zero values fall back to defaults suited to
// the short read bursts of the listing and filter queries.
type Options struct {
	MaxConns int32
	MinConns int32
}

// poolConfig translates the connection URL and sizing options into a pgx
// pool config. Min connections stay warm so the block-changes listener
// never waits on a fresh dial.
func poolConfig(databaseURL string, opts Options) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = opts.MaxConns
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 10
	}
	cfg.MinConns = opts.MinConns
	if cfg.MinConns <= 0 {
		cfg.MinConns = 2
	}
	if cfg.MinConns > cfg.MaxConns {
		cfg.MinConns = cfg.MaxConns
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	return cfg, nil
}

// NewPool opens a connection pool and verifies it with a ping, retrying
// with doubling backoff so a restart can outlast a database that is still
// coming up.
func NewPool(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Printf("database ready (max %d conns)", cfg.MaxConns)
				return pool, nil
			}
			pool.Close()
		}

		if attempt >= connectAttempts {
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, err)
		}
		log.Printf("database not ready (attempt %d/%d), retrying in %s: %v", attempt, connectAttempts, backoff, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
