// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/garkas/cliparse"
	"github.com/danielhkuo/garkas/db"
	"github.com/danielhkuo/garkas/store"
)

// backend is an opened database with its event store
type backend struct {
	store    *store.SQLStore
	notifier store.Notifier
	closers  []func() error
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			slog.Error("error closing backend", "error", err)
		}
	}
}

// openBackend connects to the configured database, creates the schema and wires the store
func openBackend(ctx context.Context, cfg cliparse.Config) (*backend, error) {
	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	b := &backend{closers: []func() error{conn.Close}}

	if driver == "sqlite" {
		// One writer at a time; also keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if driver == "sqlite" {
		// serve and import may hold the same file open at once
		if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	if err := db.CreateSchema(conn); err != nil {
		b.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Debug("database schema ready", "type", cfg.DatabaseType)

	// Without Redis, other processes on the same database are picked up by polling
	b.notifier = store.NewPollNotifier(conn, store.DefaultPollInterval)
	if cfg.RedisURL != "" {
		client := store.NewRedisClient(cfg.RedisURL)
		b.closers = append(b.closers, client.Close)
		b.notifier = store.NewRedisNotifier(client, cfg.RedisChannel)
		slog.Info("change notifications enabled", "channel", cfg.RedisChannel)
	}

	b.store = store.NewSQLStore(conn, b.notifier)
	return b, nil
}
