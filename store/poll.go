// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// DefaultPollInterval is how often PollNotifier checks for outside writes
const DefaultPollInterval = 2 * time.Second

// PollNotifier picks up writes made by other processes sharing the database,
// such as `garkas import` against a running server. It compares a version
// stamp of event_doc on every tick. Own writes are seen too; the extra
// refresh they cause is harmless.
type PollNotifier struct {
	db       *sql.DB
	interval time.Duration
}

func NewPollNotifier(db *sql.DB, interval time.Duration) *PollNotifier {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollNotifier{db: db, interval: interval}
}

// Notify is a no-op; the write itself is what the listeners poll for
func (*PollNotifier) Notify(ctx context.Context) error { return nil }

func (n *PollNotifier) Listen(ctx context.Context, onChange func()) error {
	last, err := n.version(ctx)
	if err != nil {
		return err
	}
	// Covers writes between the caller's first load and the first version read
	onChange()

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v, err := n.version(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				slog.Warn("failed to poll for changes", "error", err)
				continue
			}
			if v != last {
				last = v
				onChange()
			}
		}
	}
}

// tableVersion changes on every insert (seq, count), update (updated_at) and delete (count)
type tableVersion struct {
	count     int64
	maxSeq    int64
	maxUpdate int64
}

func (n *PollNotifier) version(ctx context.Context) (tableVersion, error) {
	var v tableVersion
	err := n.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(seq), 0), COALESCE(MAX(updated_at), 0)
		FROM event_doc
	`).Scan(&v.count, &v.maxSeq, &v.maxUpdate)
	if err != nil {
		return tableVersion{}, fmt.Errorf("failed to read event_doc version: %w", err)
	}
	return v, nil
}
