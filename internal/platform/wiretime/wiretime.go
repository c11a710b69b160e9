// Package wiretime is the single place timestamps are converted between
// their in-memory form and the textual form persisted in documents. Every
// store round-trips its date fields through here so a record read back
// compares equal, instant for instant, to the record that was written.
package wiretime

import (
	"fmt"
	"time"
)

// Layout is the canonical wire form: RFC 3339 with sub-second precision.
const Layout = time.RFC3339Nano

func ToWire(t time.Time) string {
	return t.UTC().Format(Layout)
}

// FromWire parses a wire-form timestamp. Values that are already a
// time.Time are returned unchanged, so callers can rehydrate documents
// without caring whether the store handed back text or a parsed value.
func FromWire(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: %w", v, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp value %T", value)
	}
}

// Rehydrate rewrites the named fields of doc to canonical wire form in
// place. Fields that are absent or null are left alone.
func Rehydrate(doc map[string]any, fields ...string) error {
	for _, field := range fields {
		raw, ok := doc[field]
		if !ok || raw == nil {
			continue
		}
		t, err := FromWire(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		doc[field] = ToWire(t)
	}
	return nil
}
