// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appstate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/podium"
	"github.com/danielhkuo/garkas/store"
)

// State holds the in-memory view of the event log.
// The event collection only changes through Replace and Fail.
type State struct {
	mu           sync.RWMutex
	events       []models.Event
	persons      []models.Person
	selectedYear int
	err          error
}

func New(persons []models.Person, selectedYear int) *State {
	return &State{
		events:       []models.Event{},
		persons:      append([]models.Person{}, persons...),
		selectedYear: selectedYear,
	}
}

// Replace swaps in a full snapshot
func (s *State) Replace(events []models.Event) {
	next := make([]models.Event, len(events))
	for i, e := range events {
		next[i] = e.Clone()
		next[i].Normalize()
	}

	s.mu.Lock()
	s.events = next
	s.err = nil
	s.mu.Unlock()
}

// Fail clears the collection after a subscription error
func (s *State) Fail(err error) {
	s.mu.Lock()
	s.events = []models.Event{}
	s.err = err
	s.mu.Unlock()
}

// Err returns the last subscription error, if the latest snapshot failed
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Events returns a copy of the collection, newest date first.
// Events with an unparseable date go last.
func (s *State) Events() []models.Event {
	s.mu.RLock()
	out := make([]models.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	s.mu.RUnlock()

	models.SortByDateDesc(out)
	return out
}

// Find looks up an event by its client id
func (s *State) Find(id int64) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.Event{}, false
}

func (s *State) Persons() []models.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Person{}, s.persons...)
}

// KnownPerson reports whether name is in the persons roster
func (s *State) KnownPerson(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.persons {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (s *State) SelectYear(year int) {
	s.mu.Lock()
	s.selectedYear = year
	s.mu.Unlock()
}

func (s *State) SelectedYear() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedYear
}

// Years returns the distinct event years, most recent first
func (s *State) Years() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return podium.AvailableYears(s.events)
}

// Podium builds the podium view, resetting the selected year if it is gone
func (s *State) Podium() models.PodiumView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, year := podium.Build(s.events, s.persons, s.selectedYear)
	s.selectedYear = year
	return view
}

// Run applies snapshots from sub until it closes or ctx is done.
// onChange, if set, runs after each applied snapshot.
func (s *State) Run(ctx context.Context, sub *store.Subscription, onChange func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-sub.C:
			if !ok {
				return
			}
			if snap.Err != nil {
				slog.Error("event subscription failed", "error", snap.Err)
				s.Fail(snap.Err)
			} else {
				s.Replace(snap.Events)
				slog.Info("events loaded", "count", len(snap.Events))
			}
			if onChange != nil {
				onChange()
			}
		}
	}
}
