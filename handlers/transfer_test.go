// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/testutil"
)

const importFile = `[
  {"id": 1704067200000, "title": "Year opener", "date": "2024-01-01T20:00", "description": "Penalties",
   "image": null, "garkas": [{"name": "Hato", "description": "Own goal", "addedAt": "2024-01-01T22:15:00Z"}],
   "createdAt": "2024-01-01T10:00:00Z", "storeId": "from-another-instance"},
  {"id": "1714590000000", "title": "May cup", "date": "2024-05-01", "description": "Group stage"}
]`

func TestExport(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewTransferHandler(st, state)
	handler.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }

	testutil.CreateTestEvent(t, st, "Opening", "2024-06-14T21:00", "Hato")
	testutil.CreateTestEvent(t, st, "Final", "2024-07-14T21:00")
	testutil.SyncState(t, st, state)

	w := httptest.NewRecorder()
	handler.Export(w, httptest.NewRequest("GET", "/export", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	disposition := w.Header().Get("Content-Disposition")
	if disposition != `attachment; filename="fifa-events-2024-07-01.json"` {
		t.Errorf("Unexpected Content-Disposition '%s'", disposition)
	}
	if !strings.Contains(w.Body.String(), "\n  {") {
		t.Error("Expected indented JSON")
	}

	var events []models.Event
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(events) != 2 || events[0].Title != "Final" {
		t.Errorf("Expected both events newest first, got %v", events)
	}
}

func TestExport_Empty(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewTransferHandler(st, state)

	w := httptest.NewRecorder()
	handler.Export(w, httptest.NewRequest("GET", "/export", nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "No events to export" {
		t.Errorf("Unexpected message '%s'", resp.Message)
	}
}

func TestImport_Preview(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewTransferHandler(st, state)

	w := httptest.NewRecorder()
	handler.Import(w, httptest.NewRequest("POST", "/import", strings.NewReader(importFile)))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ImportResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 2 || resp.Confirmed || resp.Imported != 0 {
		t.Errorf("Unexpected preview response %+v", resp)
	}
	if n := len(listEvents(t, st)); n != 0 {
		t.Errorf("Preview must not write, found %d events", n)
	}
}

func TestImport_Confirmed(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewTransferHandler(st, state)

	existing := testutil.CreateTestEvent(t, st, "Already here", "2023-01-01")

	w := httptest.NewRecorder()
	handler.Import(w, httptest.NewRequest("POST", "/import?confirm=true", strings.NewReader(importFile)))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ImportResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 2 || resp.Imported != 2 || !resp.Confirmed {
		t.Errorf("Unexpected import response %+v", resp)
	}

	events := listEvents(t, st)
	if len(events) != 3 {
		t.Fatalf("Expected imported events appended to existing ones, got %d", len(events))
	}
	if events[0].StoreID != existing.StoreID {
		t.Error("Existing event should be untouched")
	}
	for _, e := range events[1:] {
		if e.StoreID == "from-another-instance" {
			t.Error("Imported events must get fresh store ids")
		}
		if e.Garkas == nil {
			t.Error("Imported events must have a garka list")
		}
	}
	if events[2].ID != 1714590000000 {
		t.Errorf("Expected string id to be accepted, got %d", events[2].ID)
	}
}

func TestImport_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "hello"},
		{"object instead of array", `{"id": 1, "title": "t", "date": "2024-01-01", "description": "d"}`},
		{"missing description", `[{"id": 1, "title": "t", "date": "2024-01-01"}]`},
		{"one bad record spoils the file", `[
			{"id": 1, "title": "t", "date": "2024-01-01", "description": "d"},
			{"id": 0, "title": "t", "date": "2024-01-01", "description": "d"}
		]`},
		{"empty title", `[{"id": 1, "title": "", "date": "2024-01-01", "description": "d"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, state := testutil.SetupTestStore(t)
			handler := NewTransferHandler(st, state)

			w := httptest.NewRecorder()
			handler.Import(w, httptest.NewRequest("POST", "/import?confirm=true", strings.NewReader(tt.body)))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			if n := len(listEvents(t, st)); n != 0 {
				t.Errorf("Invalid file must write nothing, found %d events", n)
			}
		})
	}
}

func TestImport_StoreFailure(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewTransferHandler(&failingStore{Store: st}, state)

	w := httptest.NewRecorder()
	handler.Import(w, httptest.NewRequest("POST", "/import?confirm=true", strings.NewReader(importFile)))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}
