// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	DefaultPort        = 3318
	DefaultDatabaseURL = "file:garkas.db"
	DefaultLogLevel    = "info"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	ConfigSource  string // config.json path or URL
	PersonsSource string // persons.json path or URL
	RedisURL      string // optional, enables cross-instance change notifications
	RedisChannel  string
	LogLevel      string
}

// Bind registers the configuration flags on fs
func Bind(fs *pflag.FlagSet, cfg *Config) {
	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	// Reference data
	fs.StringVar(&cfg.ConfigSource, "config", "", "config.json path or URL")
	fs.StringVar(&cfg.PersonsSource, "persons", "", "persons.json path or URL")

	// Live sync between instances
	fs.StringVar(&cfg.RedisURL, "redis-url", "", "Redis URL for change notifications")
	fs.StringVar(&cfg.RedisChannel, "redis-channel", "", "Redis channel for change notifications")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// ApplyEnv fills unset values from environment variables, then defaults
func ApplyEnv(cfg *Config) error {
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultDatabaseURL
	}

	cfg.ConfigSource = firstNonEmpty(cfg.ConfigSource, os.Getenv("CONFIG_SOURCE"), "config.json")
	cfg.PersonsSource = firstNonEmpty(cfg.PersonsSource, os.Getenv("PERSONS_SOURCE"), "persons.json")
	cfg.RedisURL = firstNonEmpty(cfg.RedisURL, os.Getenv("REDIS_URL"))
	cfg.RedisChannel = firstNonEmpty(cfg.RedisChannel, os.Getenv("REDIS_CHANNEL"))
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), DefaultLogLevel)

	return nil
}

// ParseFlags parses args and applies env fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("garkas", pflag.ContinueOnError)
	Bind(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
