// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/garkas/db"
)

func openFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitChange waits for one onChange call
func waitChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestPollNotifierSeesWritesFromAnotherStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garkas.db")
	serverDB := openFileDB(t, path)
	cliDB := openFileDB(t, path)
	require.NoError(t, db.CreateSchema(serverDB))

	server := NewSQLStore(serverDB, nil)
	importer := NewSQLStore(cliDB, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := server.Subscribe(ctx)
	assert.Empty(t, next(t, sub).Events)

	notifier := NewPollNotifier(serverDB, 10*time.Millisecond)
	go notifier.Listen(ctx, func() { server.Refresh(ctx) })

	_, err := importer.Add(ctx, testEvent(1, "imported"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		select {
		case snap := <-sub.C:
			return len(snap.Events) == 1 && snap.Events[0].Title == "imported"
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "server subscription should see the other store's write")
}

func TestPollNotifierDetectsEveryKindOfWrite(t *testing.T) {
	s, conn := setupStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 16)
	notifier := NewPollNotifier(conn, 10*time.Millisecond)
	done := make(chan error, 1)
	go func() {
		done <- notifier.Listen(ctx, func() { changes <- struct{}{} })
	}()

	// Initial catch-up call
	waitChange(t, changes)

	id, err := s.Add(ctx, testEvent(1, "first"))
	require.NoError(t, err)
	waitChange(t, changes)

	updated := testEvent(1, "renamed")
	require.NoError(t, s.Set(ctx, id, updated))
	waitChange(t, changes)

	require.NoError(t, s.Delete(ctx, id))
	waitChange(t, changes)

	assert.Never(t, func() bool { return len(changes) > 0 }, 100*time.Millisecond, 10*time.Millisecond,
		"no change without writes")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not stop after cancel")
	}
}

func TestPollNotifierFailsWithoutSchema(t *testing.T) {
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	defer conn.Close()

	err = NewPollNotifier(conn, time.Millisecond).Listen(context.Background(), func() {})
	assert.Error(t, err)
}

func TestPollNotifierNotifyIsNoop(t *testing.T) {
	_, conn := setupStore(t)
	assert.NoError(t, NewPollNotifier(conn, 0).Notify(context.Background()))
}
