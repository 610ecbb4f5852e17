// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/garkas/auth"
	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/store"
	"github.com/danielhkuo/garkas/testutil"
)

func setupRouter(t *testing.T) (*http.ServeMux, *store.SQLStore) {
	t.Helper()

	st, state := testutil.SetupTestStore(t)

	// Keep the state current the way the server does
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sub := st.Subscribe(ctx)
	go state.Run(ctx, sub, nil)

	return NewRouter(st, state, auth.NewGate(testutil.TestAccessCode)), st
}

func countEvents(t *testing.T, st store.Store) int {
	t.Helper()
	events, err := st.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return len(events)
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "garkas API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "garkas_") {
		t.Error("Expected garkas metrics in the exposition")
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := setupRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/events"},
		{"POST", "/events"},
		{"DELETE", "/events/1"},
		{"POST", "/events/1/garkas"},
		{"DELETE", "/events/1/garkas/0"},
		{"GET", "/podium"},
		{"GET", "/years"},
		{"GET", "/persons"},
		{"GET", "/export"},
		{"POST", "/import"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// 400, 401, 404 are all valid responses depending on handler logic
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := setupRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/events/1"},
		{"DELETE", "/podium"},
		{"GET", "/import"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	mux, _ := setupRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestMutationsRequireAccessCode(t *testing.T) {
	mux, st := setupRouter(t)

	body := models.CreateEventRequest{Title: "t", Date: "2024-01-01", Description: "d"}
	testCases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{"POST", "/events", body},
		{"DELETE", "/events/1", nil},
		{"POST", "/events/1/garkas", models.AddGarkaRequest{Name: "Hato", Description: "d"}},
		{"DELETE", "/events/1/garkas/0", nil},
		{"POST", "/import?confirm=true", []interface{}{}},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, tc.body, map[string]string{"X-Access-Code": "0000"})
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}

	if n := countEvents(t, st); n != 0 {
		t.Errorf("Rejected requests must not write, found %d events", n)
	}
}

func TestWrongCodeThenCorrectCode(t *testing.T) {
	mux, st := setupRouter(t)

	body := models.CreateEventRequest{Title: "Final", Date: "2024-07-14T21:00", Description: "Spain vs England"}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/events", body, map[string]string{"X-Access-Code": "1234"}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/events", body, testutil.AccessHeaders()))
	testutil.AssertStatus(t, w, http.StatusCreated)

	if n := countEvents(t, st); n != 1 {
		t.Errorf("Expected exactly one event, got %d", n)
	}
}

func TestEndToEnd(t *testing.T) {
	mux, st := setupRouter(t)

	// Create an event
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/events", models.CreateEventRequest{
		Title: "Opening", Date: "2024-06-14T21:00", Description: "Germany vs Scotland",
	}, testutil.AccessHeaders()))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateEventResponse
	testutil.AssertJSON(t, w, &created)
	id := strconv.FormatInt(created.ID, 10)

	// The subscription brings it into the state
	waitFor(t, func() bool {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
		var resp models.EventListResponse
		testutil.AssertJSON(t, w, &resp)
		return len(resp.Events) == 1
	})

	// Award a garka
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/events/"+id+"/garkas", models.AddGarkaRequest{
		Name: "Hato", Description: "Celebrated an offside goal",
	}, testutil.AccessHeaders()))
	testutil.AssertStatus(t, w, http.StatusCreated)

	waitFor(t, func() bool {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/podium?year=2024", nil))
		var view models.PodiumView
		testutil.AssertJSON(t, w, &view)
		return view.State == models.PodiumRanked && view.Places[0].Name == "Hato"
	})

	// Export contains it
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/export", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Celebrated an offside goal") {
		t.Error("Expected the garka in the export")
	}

	// Delete it
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/events/"+id, nil, testutil.AccessHeaders()))
	testutil.AssertStatus(t, w, http.StatusOK)

	if n := countEvents(t, st); n != 0 {
		t.Errorf("Expected no events after delete, got %d", n)
	}
}
