// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/garkas/auth"
	"github.com/danielhkuo/garkas/models"
)

// Default sources, relative to the working directory
const (
	DefaultConfigSource  = "config.json"
	DefaultPersonsSource = "persons.json"
)

const maxDocumentSize = 1 << 20

// Client is used for http(s) sources
var Client = &http.Client{Timeout: 10 * time.Second}

type configFile struct {
	AccessCode string `json:"accessCode" yaml:"accessCode"`
}

// LoadAccessCode reads accessCode from a config file path or URL.
// Any failure, or an empty field, yields auth.DefaultAccessCode.
func LoadAccessCode(ctx context.Context, src string) string {
	var cfg configFile
	// Remote config is fetched fresh every time
	if err := load(ctx, src, true, &cfg); err != nil {
		slog.Warn("config not loaded, using default access code", "source", src, "error", err)
		return auth.DefaultAccessCode
	}
	if cfg.AccessCode == "" {
		slog.Warn("config has no accessCode, using default", "source", src)
		return auth.DefaultAccessCode
	}

	slog.Info("access code loaded", "source", src)
	return cfg.AccessCode
}

// LoadPersons reads the persons roster from a file path or URL.
// Any failure yields models.DefaultPersons.
func LoadPersons(ctx context.Context, src string) []models.Person {
	var persons []models.Person
	if err := load(ctx, src, false, &persons); err != nil {
		slog.Warn("persons not loaded, using defaults", "source", src, "error", err)
		return models.DefaultPersons()
	}
	if persons == nil {
		persons = []models.Person{}
	}

	slog.Info("persons loaded", "source", src, "count", len(persons))
	return persons
}

func load(ctx context.Context, src string, noCache bool, v any) error {
	if src == "" {
		return fmt.Errorf("no source configured")
	}

	var (
		data []byte
		err  error
	)
	if isRemote(src) {
		data, err = fetch(ctx, src, noCache)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return err
	}

	return decode(src, data, v)
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func fetch(ctx context.Context, src string, noCache bool) ([]byte, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}
	if noCache {
		q := u.Query()
		q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", src, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}

func decode(src string, data []byte, v any) error {
	name := src
	if u, err := url.Parse(src); err == nil && isRemote(src) {
		name = u.Path
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", src, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", src, err)
		}
	}
	return nil
}
