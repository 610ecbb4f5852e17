// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the garka log API.

# Handler Types

Each handler is a struct holding the event store and the application state:

  - EventHandler: event list, create/delete, garka add/remove
  - PodiumHandler: podium view, year selector, person roster
  - TransferHandler: JSON export and import
  - StreamHandler: live snapshots over server-sent events

Handlers are created via constructor functions:

	eventHandler := handlers.NewEventHandler(st, state)

# Reads and Writes

Reads are served from the in-memory snapshot kept by appstate.State. Writes
go to the store only: a mutation copies the event from the snapshot, applies
the change and overwrites the whole record with Set. The snapshot itself is
replaced when the store's subscription delivers the new collection.

	POST   /events                     → Create
	DELETE /events/{id}                → Delete
	POST   /events/{id}/garkas         → AddGarka
	DELETE /events/{id}/garkas/{index} → RemoveGarka
	POST   /import?confirm=true        → Import

{id} is the numeric event id, not the store's document id. Store failures
are logged and answered with 500.

# Podium

	GET /podium?year=2024

Returns a models.PodiumView in one of three states: no_events, no_garkas
or ranked. The year parameter becomes the selected year; if that year has
no events the most recent year is used instead.

# Import

The whole file is validated before anything is written. Without
confirm=true only the number of events is returned so a client can ask for
confirmation first.

# Live Updates

	GET /events/stream

Each store snapshot is written as a "data:" frame holding the sorted events
and the podium for the stream's selected year.
*/
package handlers
