// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Podium view states
const (
	PodiumNoEvents = "no_events"
	PodiumNoGarkas = "no_garkas"
	PodiumRanked   = "ranked"
)

// PodiumSize is the number of places shown on the podium
const PodiumSize = 3

var (
	medals    = [PodiumSize]string{"🥇", "🥈", "🥉"}
	positions = [PodiumSize]string{"first", "second", "third"}
)

// PlaceLabels returns the position name and medal for a 0-based podium index
func PlaceLabels(i int) (position, medal string) {
	if i < 0 || i >= PodiumSize {
		return "", ""
	}
	return positions[i], medals[i]
}

// Domain types

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	Garkas      []Garka   `json:"garkas"`
	CreatedAt   time.Time `json:"createdAt"`
	StoreID     string    `json:"storeId,omitempty"` // Assigned by the store on first save
}

type Garka struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"addedAt"`
}

type Person struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// DefaultPersons is the built-in roster used when persons.json cannot be loaded
func DefaultPersons() []Person {
	return []Person{
		{Name: "Guaton", Avatar: "avatars/guaton.jpg"},
		{Name: "Hato", Avatar: "avatars/hato.jpg"},
		{Name: "Chete", Avatar: "avatars/chete.jpg"},
	}
}

// Normalize replaces a nil garka list with an empty one
func (e *Event) Normalize() {
	if e.Garkas == nil {
		e.Garkas = []Garka{}
	}
}

// Clone returns a copy that shares no mutable state with e
func (e Event) Clone() Event {
	out := e
	out.Garkas = make([]Garka, len(e.Garkas))
	copy(out.Garkas, e.Garkas)
	if e.Image != nil {
		img := *e.Image
		out.Image = &img
	}
	return out
}

// Accepted layouts for Event.Date, tried in order.
// Layouts without a zone are read in local time.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time parses Date in local calendar time
func (e Event) Time() (time.Time, bool) {
	s := strings.TrimSpace(e.Date)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(time.Local), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Year returns the local calendar year of the event date
func (e Event) Year() (int, bool) {
	t, ok := e.Time()
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// SortByDateDesc orders events newest date first, in place.
// Events with an unparseable date go last; ties keep their order.
func SortByDateDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, okI := events[i].Time()
		tj, okJ := events[j].Time()
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewEventID returns a millisecond timestamp, bumped so it never repeats in this process
func NewEventID(now time.Time) int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// Podium types

type Tally struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PodiumPlace struct {
	Rank     int    `json:"rank"` // 1-indexed
	Position string `json:"position"`
	Medal    string `json:"medal"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Count    int    `json:"count"`
}

type PodiumView struct {
	State   string        `json:"state"`
	Year    int           `json:"year,omitempty"`
	Years   []int         `json:"years"`
	Places  []PodiumPlace `json:"places"`
	Tallies []Tally       `json:"tallies"`
}

// Request types

type CreateEventRequest struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type AddGarkaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Response types

type CreateEventResponse struct {
	ID      int64  `json:"id"`
	StoreID string `json:"store_id"`
}

type EventListResponse struct {
	Events []Event `json:"events"`
	Error  string  `json:"error,omitempty"`
}

type YearsResponse struct {
	Years []int `json:"years"`
}

type ImportResponse struct {
	Count     int  `json:"count"`
	Imported  int  `json:"imported"`
	Confirmed bool `json:"confirmed"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// StreamMessage is pushed to live subscribers on every store snapshot
type StreamMessage struct {
	Events []Event    `json:"events"`
	Podium PodiumView `json:"podium"`
	Error  string     `json:"error,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
