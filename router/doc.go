// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the garka log API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, state, gate)

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics

Events (writes require X-Access-Code):

	GET    /events                     - Current events, newest first
	GET    /events/stream              - Live snapshots (server-sent events)
	POST   /events                     - Create event
	DELETE /events/{id}                - Delete event
	POST   /events/{id}/garkas         - Award a garka
	DELETE /events/{id}/garkas/{index} - Remove a garka

Podium:

	GET /podium?year=YYYY - Top three for a year
	GET /years            - Years with events
	GET /persons          - Known persons

Import and export:

	GET  /export              - Download all events as JSON
	POST /import?confirm=true - Import a previously exported file (requires X-Access-Code)

All routes except /health and /metrics are wrapped with request logging.
*/
package router
