// Package docstore provides the document persistence the domain stores are
// written against: named collections of schemaless JSON documents with
// equality-filter lookups and field-merge updates. The production
// implementation keeps documents in a single Postgres JSONB table.
package docstore

import (
	"context"
	"errors"
)

// FindLimit caps every multi-document read.
const FindLimit = 1000

var ErrNoDocuments = errors.New("no documents in result")

// Filter matches documents whose top-level fields equal every listed value.
// An empty filter matches everything.
type Filter map[string]any

type Collection interface {
	InsertOne(ctx context.Context, doc map[string]any) error
	// Find returns at most limit documents in insertion order. A limit of
	// zero or above FindLimit is clamped to FindLimit.
	Find(ctx context.Context, filter Filter, limit int) ([]map[string]any, error)
	// FindOne returns the first matching document or ErrNoDocuments.
	FindOne(ctx context.Context, filter Filter) (map[string]any, error)
	// UpdateOne merges set into the first matching document's top-level
	// fields and reports whether a document matched.
	UpdateOne(ctx context.Context, filter Filter, set map[string]any) (bool, error)
}

type Store interface {
	Collection(name string) Collection
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > FindLimit {
		return FindLimit
	}
	return limit
}
