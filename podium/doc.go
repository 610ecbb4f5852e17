// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package podium computes the yearly garka leaderboard.

Every function here is pure: the result depends only on the arguments.

# Aggregation

	tallies := podium.Aggregate(events, persons, 2024)

Each known person starts at zero. Events are filtered by the local calendar
year of their date (0 means all years), and each garka naming a known person
adds one. Garkas for unknown names are ignored. The result is sorted by count
descending with a stable sort, so ties keep the order of persons.

# Years

	years := podium.AvailableYears(events) // [2024 2023]
	year := podium.ResolveYear(years, selected)

ResolveYear falls back to the most recent year when the selection is gone.

# Views

	view, year := podium.Build(events, persons, selected)

Build returns one of three states:

  - no_events: nothing to rank, aggregation is skipped
  - no_garkas: events exist but every tally is zero for the year
  - ranked: the top three places with medals 🥇 🥈 🥉
*/
package podium
