// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/danielhkuo/garkas/models"
)

var ErrNotFound = errors.New("event document not found")

// Store is the event store adapter
type Store interface {
	// Add saves a new document and returns its generated id
	Add(ctx context.Context, event models.Event) (string, error)
	// Set overwrites the full document with the given id
	Set(ctx context.Context, id string, event models.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Event, error)
	// Subscribe streams the full collection, once immediately and again after every change
	Subscribe(ctx context.Context) *Subscription
}

// Snapshot is the full collection at one point in time.
// Events is shared between subscribers and must not be modified.
type Snapshot struct {
	Events []models.Event
	Err    error
}

// Subscription delivers snapshots on C until closed.
// Only the latest undelivered snapshot is kept: a newer one replaces it.
type Subscription struct {
	C <-chan Snapshot

	ch      chan Snapshot
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
	onClose func()
}

func newSubscription(onClose func()) *Subscription {
	ch := make(chan Snapshot, 1)
	return &Subscription{
		C:       ch,
		ch:      ch,
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

func (s *Subscription) offer(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	// Drop the stale snapshot nobody has read yet
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snap
}

// Done is closed when the subscription ends
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close ends the subscription and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	close(s.done)
	s.mu.Unlock()

	if s.onClose != nil {
		s.onClose()
	}
}
