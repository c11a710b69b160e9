package record

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrms/internal/platform/docstore"
)

type note struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	DueAt     time.Time `json:"due_at"`
	CreatedAt time.Time `json:"created_at"`
}

var notes = Kind[note]{Collection: "notes", TimeFields: []string{"due_at", "created_at"}}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory()

	in := note{
		ID:        "n1",
		Body:      "quarterly check-in",
		DueAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600)),
		CreatedAt: time.Now().UTC(),
	}
	if err := notes.Create(ctx, db, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := notes.Get(ctx, db, "n1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Body != in.Body {
		t.Fatalf("body mismatch: %q", out.Body)
	}
	if !out.DueAt.Equal(in.DueAt) {
		t.Fatalf("due_at instant changed: got %v want %v", out.DueAt, in.DueAt)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("created_at instant changed: got %v want %v", out.CreatedAt, in.CreatedAt)
	}
}

func TestGetNotFound(t *testing.T) {
	db := docstore.NewMemory()
	if _, err := notes.Get(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListFilterAndCap(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory()

	for i := 0; i < docstore.FindLimit+10; i++ {
		n := note{ID: fmt.Sprintf("n%d", i), Body: "bulk", CreatedAt: time.Now().UTC()}
		if err := notes.Create(ctx, db, n); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := notes.List(ctx, db, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != docstore.FindLimit {
		t.Fatalf("got %d records, want cap %d", len(all), docstore.FindLimit)
	}

	one, err := notes.List(ctx, db, docstore.Filter{"id": "n3"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(one) != 1 || one[0].ID != "n3" {
		t.Fatalf("filter miss: %v", one)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory()

	if err := notes.Update(ctx, db, "missing", map[string]any{"body": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if remaining, err := notes.List(ctx, db, nil); err != nil || len(remaining) != 0 {
		t.Fatalf("update of a missing id must not persist anything, got %v %v", remaining, err)
	}

	created := time.Now().UTC().Add(-time.Hour)
	if err := notes.Create(ctx, db, note{ID: "n1", Body: "old", CreatedAt: created}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := notes.Update(ctx, db, "n1", map[string]any{"body": "new"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := notes.Get(ctx, db, "n1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Body != "new" {
		t.Fatalf("body not updated: %q", out.Body)
	}
	if !out.CreatedAt.Equal(created) {
		t.Fatalf("merge clobbered created_at: got %v want %v", out.CreatedAt, created)
	}
}
