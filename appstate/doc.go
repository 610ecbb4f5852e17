// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package appstate owns the application state: the event collection, the
persons roster, and the podium year selection.

The collection is never patched locally. It changes only when a store
snapshot arrives:

	st := appstate.New(persons, time.Now().Year())
	go st.Run(ctx, store.Subscribe(ctx), nil)

Replace swaps in a full snapshot. Fail clears everything after a
subscription error so stale data is never shown. Readers get copies, so
callers can build an updated record from Find and hand it to the store
without touching shared state.
*/
package appstate
