// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/auth"
	"github.com/danielhkuo/garkas/handlers"
	"github.com/danielhkuo/garkas/metrics"
	"github.com/danielhkuo/garkas/middleware"
	"github.com/danielhkuo/garkas/store"
)

func NewRouter(st store.Store, state *appstate.State, gate *auth.Gate) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(st, state)
	podiumHandler := handlers.NewPodiumHandler(state)
	transferHandler := handlers.NewTransferHandler(st, state)
	streamHandler := handlers.NewStreamHandler(st, state)

	gated := func(action string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAccessCode(gate, action, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Events (reads are public, writes need the access code)
	mux.HandleFunc("GET /events", middleware.WithLogging(eventHandler.List))
	mux.HandleFunc("GET /events/stream", middleware.WithLogging(streamHandler.Stream))
	mux.HandleFunc("POST /events", gated("create event", eventHandler.Create))
	mux.HandleFunc("DELETE /events/{id}", gated("delete event", eventHandler.Delete))
	mux.HandleFunc("POST /events/{id}/garkas", gated("add garka", eventHandler.AddGarka))
	mux.HandleFunc("DELETE /events/{id}/garkas/{index}", gated("remove garka", eventHandler.RemoveGarka))

	// Podium and reference data
	mux.HandleFunc("GET /podium", middleware.WithLogging(podiumHandler.Podium))
	mux.HandleFunc("GET /years", middleware.WithLogging(podiumHandler.Years))
	mux.HandleFunc("GET /persons", middleware.WithLogging(podiumHandler.Persons))

	// Import / export
	mux.HandleFunc("GET /export", middleware.WithLogging(transferHandler.Export))
	mux.HandleFunc("POST /import", gated("import events", transferHandler.Import))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("garkas API v1"))
	})

	return mux
}
