// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Drivers

Two database types are supported:

  - sqlite: modernc.org/sqlite (driver "sqlite"), the default
  - postgres: github.com/lib/pq (driver "postgres")

DriverName maps the configured type to the driver name for sql.Open.

# Tables

  - event_doc: one JSON document per event, keyed by the store-assigned id

The seq column keeps insertion order. Timestamps are Unix nanoseconds so the
same schema works on both databases.
*/
package db
