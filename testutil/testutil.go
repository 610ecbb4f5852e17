// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/db"
	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/store"
)

// TestAccessCode is the passphrase configured for handler and router tests
const TestAccessCode = "4321"

// TestYear is the year selected when a test state is created
const TestYear = 2024

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// SetupTestStore returns a store over a fresh database and an empty state
func SetupTestStore(t *testing.T) (*store.SQLStore, *appstate.State) {
	t.Helper()

	st := store.NewSQLStore(SetupTestDB(t), nil)
	return st, appstate.New(models.DefaultPersons(), TestYear)
}

// SyncState loads the store contents into state.
// Tests use it instead of a running subscription so assertions never race.
func SyncState(t *testing.T, st store.Store, state *appstate.State) {
	t.Helper()

	events, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	state.Replace(events)
}

// CreateTestEvent stores an event with the given garka names and returns it with its StoreID
func CreateTestEvent(t *testing.T, st store.Store, title, date string, garkas ...string) models.Event {
	t.Helper()

	now := time.Now()
	event := models.Event{
		ID:          models.NewEventID(now),
		Title:       title,
		Date:        date,
		Description: "A test event",
		Garkas:      []models.Garka{},
		CreatedAt:   now,
	}
	for _, name := range garkas {
		event.Garkas = append(event.Garkas, models.Garka{
			Name:        name,
			Description: "Arrived late",
			AddedAt:     now,
		})
	}

	id, err := st.Add(context.Background(), event)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	event.StoreID = id

	return event
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AccessHeaders returns request headers carrying the test access code
func AccessHeaders() map[string]string {
	return map[string]string{"X-Access-Code": TestAccessCode}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
