// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the event store adapter.

# Operations

	id, err := s.Add(ctx, event)     // new document, generated id
	err = s.Set(ctx, id, event)      // full-record overwrite
	err = s.Delete(ctx, id)
	events, err := s.List(ctx)

Set and Delete return ErrNotFound for an unknown id. Documents are stored as
JSON in the event_doc table; Event.StoreID is filled from the document id on
read and never written into the payload.

# Live Subscription

	sub := s.Subscribe(ctx)
	for snap := range sub.C {
		// snap.Events replaces all prior state
	}

The current collection arrives first, then a fresh full snapshot after every
successful write. A subscriber that falls behind only ever sees the newest
snapshot; stale ones are dropped, never reordered. A reload failure arrives as
a snapshot with Err set. Cancelling ctx or calling Close ends the stream.

# Multiple Instances

When several servers share one database, a RedisNotifier publishes on every
write and Listen triggers Refresh on the other instances:

	n := store.NewRedisNotifier(store.NewRedisClient(url), store.DefaultChannel)
	s := store.NewSQLStore(conn, n)
	go n.Listen(ctx, func() { s.Refresh(ctx) })

# Concurrency

Two writers saving the same event race: the last Set wins and the other edit
is lost. There is no optimistic concurrency control.
*/
package store
