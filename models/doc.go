// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

  - Event: a gathering with title, date, description, optional inlined image,
    and an ordered list of garkas
  - Garka: a humorous award naming a person and the deed
  - Person: reference data (name + avatar) eligible to receive garkas

Event.Date keeps the string the user entered. Event.Time parses it in local
calendar time and accepts these forms:

	2024-05-01T20:30
	2024-05-01T20:30:00
	2024-05-01
	2024-05-01T20:30:00Z (RFC 3339, converted to local time)

Event.StoreID is the document identity assigned by the store on first save.
Imports strip it so a re-import never collides with existing documents.

# Podium Types

  - Tally: per-person garka count
  - PodiumPlace: a medal position (first, second, third)
  - PodiumView: what the podium section shows, with State one of

	PodiumNoEvents = "no_events"
	PodiumNoGarkas = "no_garkas"
	PodiumRanked   = "ranked"

# Request Types

  - CreateEventRequest: title, date, description, image
  - AddGarkaRequest: name, description

# Response Types

  - CreateEventResponse: id, store_id
  - EventListResponse: events, error
  - YearsResponse: years
  - ImportResponse: count, imported, confirmed
  - StreamMessage: events, podium (one per live snapshot)
  - ErrorResponse: error, message
*/
package models
