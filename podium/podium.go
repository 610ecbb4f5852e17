// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package podium

import (
	"sort"

	"github.com/danielhkuo/garkas/models"
)

// Aggregate counts garkas per known person for the given year.
// A year of 0 includes every event. The result holds one entry per distinct
// person name, sorted by count descending; ties keep the persons order.
func Aggregate(events []models.Event, persons []models.Person, year int) []models.Tally {
	// Zero tally for every known person
	tallies := make([]models.Tally, 0, len(persons))
	index := make(map[string]int, len(persons))
	for _, p := range persons {
		if _, seen := index[p.Name]; seen {
			continue
		}
		index[p.Name] = len(tallies)
		tallies = append(tallies, models.Tally{Name: p.Name})
	}

	for _, event := range events {
		if year != 0 {
			y, ok := event.Year()
			if !ok || y != year {
				continue
			}
		}
		for _, garka := range event.Garkas {
			// Unknown names are shown on the event but never tallied
			if i, ok := index[garka.Name]; ok {
				tallies[i].Count++
			}
		}
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})

	return tallies
}

// Top returns at most n leading tallies
func Top(tallies []models.Tally, n int) []models.Tally {
	if len(tallies) < n {
		n = len(tallies)
	}
	return tallies[:n]
}

// AvailableYears returns the distinct event years, most recent first.
// Events with an unparseable date contribute nothing.
func AvailableYears(events []models.Event) []int {
	seen := make(map[int]bool)
	years := []int{}
	for _, event := range events {
		y, ok := event.Year()
		if !ok || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// ResolveYear keeps selected if it is available, otherwise picks the most recent year.
// Returns 0 when years is empty.
func ResolveYear(years []int, selected int) int {
	for _, y := range years {
		if y == selected {
			return selected
		}
	}
	if len(years) == 0 {
		return 0
	}
	return years[0]
}

// Build computes the podium view for the selected year.
// The returned year is the selection after resolution and should replace the caller's.
func Build(events []models.Event, persons []models.Person, selected int) (models.PodiumView, int) {
	years := AvailableYears(events)
	if len(years) == 0 {
		return models.PodiumView{
			State:   models.PodiumNoEvents,
			Years:   years,
			Places:  []models.PodiumPlace{},
			Tallies: []models.Tally{},
		}, selected
	}

	year := ResolveYear(years, selected)
	tallies := Aggregate(events, persons, year)

	view := models.PodiumView{
		State:   models.PodiumNoGarkas,
		Year:    year,
		Years:   years,
		Places:  []models.PodiumPlace{},
		Tallies: tallies,
	}
	if allZero(tallies) {
		return view, year
	}

	avatars := make(map[string]string, len(persons))
	for _, p := range persons {
		if _, ok := avatars[p.Name]; !ok {
			avatars[p.Name] = p.Avatar
		}
	}

	view.State = models.PodiumRanked
	for i, tally := range Top(tallies, models.PodiumSize) {
		position, medal := models.PlaceLabels(i)
		view.Places = append(view.Places, models.PodiumPlace{
			Rank:     i + 1,
			Position: position,
			Medal:    medal,
			Name:     tally.Name,
			Avatar:   avatars[tally.Name],
			Count:    tally.Count,
		})
	}

	return view, year
}

func allZero(tallies []models.Tally) bool {
	for _, t := range tallies {
		if t.Count != 0 {
			return false
		}
	}
	return true
}
