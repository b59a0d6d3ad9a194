package datastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDisabled is returned by Ping when no DSN was configured.
var ErrDisabled = errors.New("datastore: not configured")

// Config points at the document store database.
type Config struct {
	DSN      string
	Name     string
	MaxConns int32
	MinConns int32
}

// Store owns the connection pool for the lifetime of the process. The zero
// value and a nil *Store behave as a disabled store.
type Store struct {
	pool *pgxpool.Pool
	name string
}

// Open builds the pool. An empty DSN yields a disabled store. The pool
// connects lazily; a failed initial ping is logged and left to readiness.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	logger = logger.With("component", "datastore")
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		logger.Info("database url not set, datastore disabled")
		return &Store{}, nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if name := strings.TrimSpace(cfg.Name); name != "" {
		poolConfig.ConnConfig.Database = name
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	store := &Store{pool: pool, name: poolConfig.ConnConfig.Database}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		logger.Warn("postgres ping failed", "database", store.name, "error", err)
	} else {
		logger.Info("postgres datastore connected", "database", store.name)
	}
	return store, nil
}

// Enabled reports whether a pool was configured.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// Name returns the database the pool targets.
func (s *Store) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	return s.pool.Ping(ctx)
}

// Close releases the pool. Safe to call more than once.
func (s *Store) Close() {
	if !s.Enabled() {
		return
	}
	s.pool.Close()
	s.pool = nil
}
