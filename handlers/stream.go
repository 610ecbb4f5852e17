// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/store"
)

// heartbeatInterval keeps idle proxies from closing the stream
const heartbeatInterval = 25 * time.Second

type StreamHandler struct {
	store store.Store
	state *appstate.State
}

func NewStreamHandler(st store.Store, state *appstate.State) *StreamHandler {
	return &StreamHandler{store: st, state: state}
}

// Stream handles GET /events/stream?year=YYYY
// Each store snapshot is sent as a server-sent event carrying the sorted events and the podium.
// Every client keeps its own selected year, starting from the query or the shared selection.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	year := h.state.SelectedYear()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}
	view := appstate.New(h.state.Persons(), year)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		slog.Error("streaming not supported", "error", err)
		return
	}

	sub := h.store.Subscribe(r.Context())
	defer sub.Close()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	slog.Info("stream opened", "remote", r.RemoteAddr)
	defer slog.Info("stream closed", "remote", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case snap, ok := <-sub.C:
			if !ok {
				return
			}

			msg := models.StreamMessage{}
			if snap.Err != nil {
				view.Fail(snap.Err)
				msg.Error = "Failed to load events"
			} else {
				view.Replace(snap.Events)
			}
			msg.Events = view.Events()
			msg.Podium = view.Podium()

			data, err := json.Marshal(msg)
			if err != nil {
				slog.Error("failed to encode stream message", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}
