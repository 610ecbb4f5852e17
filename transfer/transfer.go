// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/danielhkuo/garkas/metrics"
	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/store"
)

var ErrInvalidImport = errors.New("invalid import file")

// Fields every imported record must carry with a non-empty value
var requiredFields = []string{"id", "title", "date", "description"}

// ExportFilename names the download for the given day (UTC)
func ExportFilename(now time.Time) string {
	return "fifa-events-" + now.UTC().Format("2006-01-02") + ".json"
}

// Export writes events as indented JSON
func Export(w io.Writer, events []models.Event) error {
	out := make([]models.Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
		out[i].Normalize()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return nil
}

// importRecord shadows Event.ID so string and numeric ids both decode
type importRecord struct {
	models.Event
	ID any `json:"id"`
}

// ParseImport validates the whole file before returning anything.
// It must be a JSON array whose every element has a non-empty id, title, date and description.
func ParseImport(r io.Reader) ([]models.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not an array", ErrInvalidImport)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	events := make([]models.Event, 0, len(raw))
	for i, item := range raw {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrInvalidImport, i)
		}
		for _, key := range requiredFields {
			if !truthy(fields[key]) {
				return nil, fmt.Errorf("%w: record %d is missing %s", ErrInvalidImport, i, key)
			}
		}

		var rec importRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidImport, i, err)
		}
		id, err := parseID(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidImport, i, err)
		}

		event := rec.Event
		event.ID = id
		event.StoreID = ""
		event.Normalize()
		events = append(events, event)
	}

	return events, nil
}

// Import adds every event as a new document.
// A failed write is logged and skipped; the failures are returned joined.
func Import(ctx context.Context, st store.Store, events []models.Event) (int, error) {
	var errs []error
	imported := 0

	for _, event := range events {
		// A previous document id would collide with existing records
		event.StoreID = ""
		event.Normalize()

		_, err := st.Add(ctx, event)
		metrics.ObserveImport(err)
		if err != nil {
			slog.Error("failed to import event", "event_id", event.ID, "error", err)
			errs = append(errs, fmt.Errorf("event %d: %w", event.ID, err))
			continue
		}
		imported++
	}

	slog.Info("events imported", "imported", imported, "failed", len(errs))
	return imported, errors.Join(errs...)
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case bool:
		return val
	default:
		return true
	}
}

// parseID keeps numeric ids. Any other truthy id gets a fresh client id.
func parseID(v any) (int64, error) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("id %v is not an integer", val)
		}
		// float64(math.MaxInt64) rounds up to 2^63
		if val < math.MinInt64 || val >= math.MaxInt64 {
			return 0, fmt.Errorf("id %v is out of range", val)
		}
		return int64(val), nil
	case string:
		id, err := strconv.ParseInt(val, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("id %q is out of range", val)
		}
		if err != nil {
			return models.NewEventID(time.Now()), nil
		}
		return id, nil
	default:
		return models.NewEventID(time.Now()), nil
	}
}
