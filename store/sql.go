// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/garkas/metrics"
	"github.com/danielhkuo/garkas/models"
)

// SQLStore keeps event documents in the event_doc table
type SQLStore struct {
	db       *sql.DB
	notifier Notifier
	now      func() time.Time

	// broadcastMu serializes reload+deliver so snapshots reach subscribers in order
	broadcastMu sync.Mutex

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewSQLStore(db *sql.DB, notifier Notifier) *SQLStore {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SQLStore{
		db:       db,
		notifier: notifier,
		now:      time.Now,
		subs:     make(map[*Subscription]struct{}),
	}
}

// Add inserts a new document with a generated id
func (s *SQLStore) Add(ctx context.Context, event models.Event) (string, error) {
	id := uuid.NewString()

	payload, err := encodeEvent(event)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO event_doc (id, seq, payload, updated_at)
		VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM event_doc), $2, $3)
	`, id, payload, s.now().UnixNano())

	metrics.ObserveStoreOperation("add", err)
	if err != nil {
		return "", fmt.Errorf("failed to add event: %w", err)
	}

	slog.Debug("event document added", "store_id", id, "event_id", event.ID)
	s.changed(ctx)
	return id, nil
}

// Set overwrites an existing document
func (s *SQLStore) Set(ctx context.Context, id string, event models.Event) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE event_doc
		SET payload = $1, updated_at = $2
		WHERE id = $3
	`, payload, s.now().UnixNano(), id)
	if err == nil {
		err = requireRow(res)
	}

	metrics.ObserveStoreOperation("set", err)
	if err != nil {
		return fmt.Errorf("failed to set event %s: %w", id, err)
	}

	s.changed(ctx)
	return nil
}

// Delete removes a document
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM event_doc WHERE id = $1`, id)
	if err == nil {
		err = requireRow(res)
	}

	metrics.ObserveStoreOperation("delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}

	s.changed(ctx)
	return nil
}

// List returns every document in insertion order
func (s *SQLStore) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload
		FROM event_doc
		ORDER BY seq, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		var event models.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return nil, fmt.Errorf("failed to decode event %s: %w", id, err)
		}
		event.StoreID = id
		event.Normalize()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}

// Subscribe registers a live subscriber. The current collection is delivered first.
// The subscription ends when ctx is done or Close is called.
func (s *SQLStore) Subscribe(ctx context.Context) *Subscription {
	var sub *Subscription
	sub = newSubscription(func() { s.unsubscribe(sub) })

	s.broadcastMu.Lock()
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	events, err := s.List(ctx)
	sub.offer(Snapshot{Events: events, Err: err})
	s.broadcastMu.Unlock()

	metrics.SubscriberAdded()

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.Done():
		}
	}()

	return sub
}

// Refresh reloads the collection and pushes it to every subscriber
func (s *SQLStore) Refresh(ctx context.Context) {
	s.broadcastMu.Lock()
	defer s.broadcastMu.Unlock()

	events, err := s.List(ctx)
	if err != nil {
		slog.Error("failed to reload events for subscribers", "error", err)
	} else {
		metrics.SetSnapshotSize(len(events))
	}
	snap := Snapshot{Events: events, Err: err}

	s.mu.Lock()
	subs := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.offer(snap)
	}
}

func (s *SQLStore) changed(ctx context.Context) {
	// The write already succeeded; a cancelled request must not turn the push into an error
	ctx = context.WithoutCancel(ctx)

	s.Refresh(ctx)
	if err := s.notifier.Notify(ctx); err != nil {
		slog.Warn("failed to notify other instances", "error", err)
	}
}

func (s *SQLStore) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	_, ok := s.subs[sub]
	delete(s.subs, sub)
	s.mu.Unlock()

	if ok {
		metrics.SubscriberRemoved()
	}
}

func encodeEvent(event models.Event) (string, error) {
	// The document id lives in its own column
	event.StoreID = ""
	event.Normalize()

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to encode event: %w", err)
	}
	return string(payload), nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
