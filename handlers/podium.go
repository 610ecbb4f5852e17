// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/middleware"
	"github.com/danielhkuo/garkas/models"
)

type PodiumHandler struct {
	state *appstate.State
}

func NewPodiumHandler(state *appstate.State) *PodiumHandler {
	return &PodiumHandler{state: state}
}

// Podium handles GET /podium?year=YYYY
// A year parameter becomes the selected year. A year with no events falls back to the most recent one.
func (h *PodiumHandler) Podium(w http.ResponseWriter, r *http.Request) {
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "year must be a positive number")
			return
		}
		h.state.SelectYear(year)
	}

	middleware.JSONResponse(w, http.StatusOK, h.state.Podium())
}

// Years handles GET /years
func (h *PodiumHandler) Years(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.YearsResponse{Years: h.state.Years()})
}

// Persons handles GET /persons
func (h *PodiumHandler) Persons(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.state.Persons())
}
