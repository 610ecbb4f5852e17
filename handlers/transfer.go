// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/middleware"
	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/store"
	"github.com/danielhkuo/garkas/transfer"
)

// maxImportSize bounds the request body of POST /import
const maxImportSize = 10 << 20

type TransferHandler struct {
	store store.Store
	state *appstate.State
	now   func() time.Time
}

func NewTransferHandler(st store.Store, state *appstate.State) *TransferHandler {
	return &TransferHandler{store: st, state: state, now: time.Now}
}

// Export handles GET /export
// Returns the current snapshot as a JSON attachment
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	events := h.state.Events()
	if len(events) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No events to export")
		return
	}

	filename := transfer.ExportFilename(h.now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)

	if err := transfer.Export(w, events); err != nil {
		slog.Error("failed to write export", "error", err)
		return
	}

	slog.Info("events exported", "count", len(events), "filename", filename)
}

// Import handles POST /import?confirm=true
// The whole file is validated before anything is written. Without confirm=true
// only the number of events is returned.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportSize)
	defer body.Close()

	events, err := transfer.ParseImport(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Import file is too large")
			return
		}
		slog.Warn("rejected import file", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid import file")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		middleware.JSONResponse(w, http.StatusOK, models.ImportResponse{Count: len(events)})
		return
	}

	imported, err := transfer.Import(r.Context(), h.store, events)
	if err != nil && imported == 0 {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import events")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImportResponse{
		Count:     len(events),
		Imported:  imported,
		Confirmed: true,
	})
}
