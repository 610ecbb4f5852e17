// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the garkas service.

garkas keeps a log of informal gatherings ("events") and the comical awards
("garkas") handed out to participants at each one, and ranks the most
awarded persons on a yearly podium.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run . serve

Or with flags:

	go run . serve -p 3318 -t postgres -d "postgres://..."

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:garkas.db)
  - CONFIG_SOURCE (--config): config.json path or URL holding accessCode
  - PERSONS_SOURCE (--persons): persons.json path or URL
  - REDIS_URL (--redis-url): share changes between instances
  - LOG_LEVEL (--log-level): debug, info, warn or error

A .env file in the working directory is loaded first.

# Access Code

Every mutation needs the shared access code from config.json (default
"1234"). It keeps casual visitors from editing the log; it is not a security
boundary.

# Commands

	garkas serve
	garkas podium --year 2024
	garkas export -o backup.json
	garkas import backup.json

# Package Structure

  - appstate: In-memory snapshot, sorting and year selection
  - auth: Access code gate and terminal prompts
  - cli: Command definitions
  - cliparse: Flag and environment configuration
  - db: Schema creation
  - handlers: HTTP request handlers
  - metrics: Prometheus collectors
  - middleware: Logging, access code, CORS and JSON helpers
  - models: Data types
  - podium: Yearly leaderboard
  - refdata: config.json and persons.json loading
  - router: Route definitions
  - store: Event store with live subscriptions
  - transfer: JSON import and export
*/
package main
