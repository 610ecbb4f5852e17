// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/middleware"
	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/store"
)

type EventHandler struct {
	store store.Store
	state *appstate.State
	now   func() time.Time
}

func NewEventHandler(st store.Store, state *appstate.State) *EventHandler {
	return &EventHandler{store: st, state: state, now: time.Now}
}

// List handles GET /events
// Returns the current snapshot, newest first. A failed subscription yields no events and an error.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	response := models.EventListResponse{Events: h.state.Events()}
	if err := h.state.Err(); err != nil {
		response.Error = "Failed to load events"
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	req.Title = strings.TrimSpace(req.Title)
	req.Date = strings.TrimSpace(req.Date)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Date == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date is required")
		return
	}
	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	now := h.now()
	event := models.Event{
		ID:          models.NewEventID(now),
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Image:       req.Image,
		Garkas:      []models.Garka{},
		CreatedAt:   now,
	}
	if _, ok := event.Time(); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date is not a valid date")
		return
	}
	if event.Image != nil && *event.Image == "" {
		event.Image = nil
	}

	storeID, err := h.store.Add(r.Context(), event)
	if err != nil {
		slog.Error("failed to add event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", event.ID, "store_id", storeID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		ID:      event.ID,
		StoreID: storeID,
	})
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	event, ok := h.findEvent(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), event.StoreID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete event", "event_id", event.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	slog.Info("event deleted", "event_id", event.ID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Event deleted"})
}

// AddGarka handles POST /events/{id}/garkas
// The garka goes to the end of the list; the whole record is written back.
func (h *EventHandler) AddGarka(w http.ResponseWriter, r *http.Request) {
	event, ok := h.findEvent(w, r)
	if !ok {
		return
	}

	var req models.AddGarkaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}
	if !h.state.KnownPerson(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be a known person")
		return
	}

	event.Garkas = append(event.Garkas, models.Garka{
		Name:        req.Name,
		Description: req.Description,
		AddedAt:     h.now(),
	})

	if !h.save(w, r, event, "Failed to add garka") {
		return
	}

	slog.Info("garka added", "event_id", event.ID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, event)
}

// RemoveGarka handles DELETE /events/{id}/garkas/{index}
func (h *EventHandler) RemoveGarka(w http.ResponseWriter, r *http.Request) {
	event, ok := h.findEvent(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index must be a number")
		return
	}
	if index < 0 || index >= len(event.Garkas) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Garka not found")
		return
	}

	removed := event.Garkas[index]
	event.Garkas = append(event.Garkas[:index], event.Garkas[index+1:]...)

	if !h.save(w, r, event, "Failed to remove garka") {
		return
	}

	slog.Info("garka removed", "event_id", event.ID, "name", removed.Name, "index", index)

	middleware.JSONResponse(w, http.StatusOK, event)
}

// findEvent resolves the {id} path value against the current snapshot.
// It writes the error response and returns false when the event is unknown.
func (h *EventHandler) findEvent(w http.ResponseWriter, r *http.Request) (models.Event, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return models.Event{}, false
	}

	event, ok := h.state.Find(id)
	if !ok || event.StoreID == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return models.Event{}, false
	}

	return event, true
}

func (h *EventHandler) save(w http.ResponseWriter, r *http.Request, event models.Event, failure string) bool {
	err := h.store.Set(r.Context(), event.StoreID, event)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return false
	}
	if err != nil {
		slog.Error("failed to update event", "event_id", event.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, failure)
		return false
	}
	return true
}
