package wiretime

import (
	"testing"
	"time"
)

func TestRoundTripPreservesInstant(t *testing.T) {
	original := time.Date(2024, 3, 15, 9, 30, 0, 123456789, time.FixedZone("IST", 5*3600+1800))

	parsed, err := FromWire(ToWire(original))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if !parsed.Equal(original) {
		t.Fatalf("instant changed: got %v want %v", parsed, original)
	}
}

func TestFromWireAcceptsParsedValue(t *testing.T) {
	now := time.Now()
	got, err := FromWire(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("value changed: got %v want %v", got, now)
	}
}

func TestFromWireRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "garbage string", value: "not-a-timestamp"},
		{name: "number", value: 1700000000},
		{name: "nil", value: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromWire(tc.value); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestRehydrate(t *testing.T) {
	doc := map[string]any{
		"created_at": "2024-03-15T09:30:00+05:30",
		"name":       "ops",
		"manager_id": nil,
	}

	if err := Rehydrate(doc, "created_at", "hire_date", "manager_id"); err != nil {
		t.Fatalf("rehydrate failed: %v", err)
	}

	canonical, ok := doc["created_at"].(string)
	if !ok {
		t.Fatalf("created_at is %T, want string", doc["created_at"])
	}
	parsed, err := time.Parse(time.RFC3339, canonical)
	if err != nil {
		t.Fatalf("canonical form does not parse: %v", err)
	}
	want := time.Date(2024, 3, 15, 4, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("instant changed: got %v want %v", parsed, want)
	}
	if doc["name"] != "ops" {
		t.Fatal("unrelated field touched")
	}
}

func TestRehydrateIdempotent(t *testing.T) {
	doc := map[string]any{"created_at": "2024-03-15T09:30:00+05:30"}
	if err := Rehydrate(doc, "created_at"); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	first := doc["created_at"]
	if err := Rehydrate(doc, "created_at"); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if doc["created_at"] != first {
		t.Fatalf("second pass changed the value: %v -> %v", first, doc["created_at"])
	}
}
