// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/testutil"
)

func TestPodium_Ranked(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewPodiumHandler(state)

	testutil.CreateTestEvent(t, st, "Old", "2023-05-01", "Hato")
	testutil.CreateTestEvent(t, st, "New", "2024-01-01", "Hato", "Chete")
	testutil.SyncState(t, st, state)

	req := httptest.NewRequest("GET", "/podium?year=2024", nil)
	w := httptest.NewRecorder()
	handler.Podium(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.PodiumView
	testutil.AssertJSON(t, w, &view)

	if view.State != models.PodiumRanked {
		t.Fatalf("Expected ranked podium, got %s", view.State)
	}
	if view.Year != 2024 {
		t.Errorf("Expected year 2024, got %d", view.Year)
	}
	if len(view.Places) != 3 {
		t.Fatalf("Expected 3 places, got %d", len(view.Places))
	}

	expected := []struct {
		name  string
		count int
		medal string
	}{
		{"Hato", 1, "🥇"},
		{"Chete", 1, "🥈"},
		{"Guaton", 0, "🥉"},
	}
	for i, e := range expected {
		p := view.Places[i]
		if p.Name != e.name || p.Count != e.count || p.Medal != e.medal {
			t.Errorf("Place %d: expected %s/%d/%s, got %s/%d/%s", i+1, e.name, e.count, e.medal, p.Name, p.Count, p.Medal)
		}
	}
}

func TestPodium_SelectionPersists(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewPodiumHandler(state)

	testutil.CreateTestEvent(t, st, "Old", "2023-05-01", "Hato")
	testutil.CreateTestEvent(t, st, "New", "2024-01-01")
	testutil.SyncState(t, st, state)

	w := httptest.NewRecorder()
	handler.Podium(w, httptest.NewRequest("GET", "/podium?year=2023", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// No parameter: the previous selection sticks
	w = httptest.NewRecorder()
	handler.Podium(w, httptest.NewRequest("GET", "/podium", nil))

	var view models.PodiumView
	testutil.AssertJSON(t, w, &view)
	if view.Year != 2023 || view.State != models.PodiumRanked {
		t.Errorf("Expected ranked 2023 podium, got %s %d", view.State, view.Year)
	}
}

func TestPodium_EmptyStates(t *testing.T) {
	t.Run("no events", func(t *testing.T) {
		_, state := testutil.SetupTestStore(t)
		handler := NewPodiumHandler(state)

		w := httptest.NewRecorder()
		handler.Podium(w, httptest.NewRequest("GET", "/podium", nil))

		var view models.PodiumView
		testutil.AssertJSON(t, w, &view)
		if view.State != models.PodiumNoEvents {
			t.Errorf("Expected %s, got %s", models.PodiumNoEvents, view.State)
		}
	})

	t.Run("no garkas in year", func(t *testing.T) {
		st, state := testutil.SetupTestStore(t)
		handler := NewPodiumHandler(state)

		testutil.CreateTestEvent(t, st, "Quiet night", "2024-03-01", "Messi")
		testutil.SyncState(t, st, state)

		w := httptest.NewRecorder()
		handler.Podium(w, httptest.NewRequest("GET", "/podium?year=2024", nil))

		var view models.PodiumView
		testutil.AssertJSON(t, w, &view)
		if view.State != models.PodiumNoGarkas {
			t.Errorf("Expected %s, got %s", models.PodiumNoGarkas, view.State)
		}
		if len(view.Places) != 0 {
			t.Errorf("Expected no places, got %d", len(view.Places))
		}
	})
}

func TestPodium_MissingYearFallsBack(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewPodiumHandler(state)

	testutil.CreateTestEvent(t, st, "Only", "2022-07-01", "Chete")
	testutil.SyncState(t, st, state)

	w := httptest.NewRecorder()
	handler.Podium(w, httptest.NewRequest("GET", "/podium?year=1999", nil))

	var view models.PodiumView
	testutil.AssertJSON(t, w, &view)
	if view.Year != 2022 {
		t.Errorf("Expected fallback to 2022, got %d", view.Year)
	}
	if state.SelectedYear() != 2022 {
		t.Errorf("Expected selected year reset to 2022, got %d", state.SelectedYear())
	}
}

func TestPodium_InvalidYear(t *testing.T) {
	_, state := testutil.SetupTestStore(t)
	handler := NewPodiumHandler(state)

	for _, q := range []string{"abc", "-5", "0"} {
		t.Run(q, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Podium(w, httptest.NewRequest("GET", "/podium?year="+q, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestYears(t *testing.T) {
	st, state := testutil.SetupTestStore(t)
	handler := NewPodiumHandler(state)

	testutil.CreateTestEvent(t, st, "a", "2021-01-01")
	testutil.CreateTestEvent(t, st, "b", "2024-05-05T10:00")
	testutil.CreateTestEvent(t, st, "c", "2021-12-31T23:00")
	testutil.SyncState(t, st, state)

	w := httptest.NewRecorder()
	handler.Years(w, httptest.NewRequest("GET", "/years", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.YearsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Years) != 2 || resp.Years[0] != 2024 || resp.Years[1] != 2021 {
		t.Errorf("Expected [2024 2021], got %v", resp.Years)
	}
}

func TestPersons(t *testing.T) {
	_, state := testutil.SetupTestStore(t)
	handler := NewPodiumHandler(state)

	w := httptest.NewRecorder()
	handler.Persons(w, httptest.NewRequest("GET", "/persons", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var persons []models.Person
	testutil.AssertJSON(t, w, &persons)
	if len(persons) != 3 || persons[0].Name != "Guaton" {
		t.Errorf("Expected the default roster, got %v", persons)
	}
}
