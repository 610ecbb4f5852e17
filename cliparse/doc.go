// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line flags and configuration.

# Configuration

Commands bind the flags onto their flag set and resolve env fallbacks:

	cliparse.Bind(cmd.PersistentFlags(), &cfg)
	// after parsing
	err := cliparse.ApplyEnv(&cfg)

ParseFlags does both for a plain argument list:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: database connection string (default: file:garkas.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - ConfigSource: config.json path or URL (default: config.json)
  - PersonsSource: persons.json path or URL (default: persons.json)
  - RedisURL: enables change notifications between instances
  - RedisChannel: pub/sub channel (default: garkas:events:changed)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  sqlite or postgres
	--config             config.json path or URL
	--persons            persons.json path or URL
	--redis-url          Redis URL
	--redis-channel      Redis channel
	--log-level          Log level

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	CONFIG_SOURCE  → --config
	PERSONS_SOURCE → --persons
	REDIS_URL      → --redis-url
	REDIS_CHANNEL  → --redis-channel
	LOG_LEVEL      → --log-level

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded into the environment at startup.

# Validation

ApplyEnv returns an error when PORT is not a number, the database type is
unknown, or postgres is selected without a URL.
*/
package cliparse
