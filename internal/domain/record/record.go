// Package record implements the one persistence pattern every resource kind
// shares: insert with wire-form timestamps, list capped at the store limit,
// fetch by id, merge-update by id. A Kind describes the per-resource
// differences (collection name, which fields carry timestamps); the typed
// stores in the hr package are thin instantiations of it.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hrms/internal/platform/docstore"
	"hrms/internal/platform/wiretime"
)

var ErrNotFound = errors.New("record not found")

type Kind[T any] struct {
	Collection string
	TimeFields []string
}

// Create persists rec as a new document. Exactly one insert; the caller is
// responsible for id and created_at assignment.
func (k Kind[T]) Create(ctx context.Context, db docstore.Store, rec T) error {
	doc, err := toDoc(rec)
	if err != nil {
		return err
	}
	if err := wiretime.Rehydrate(doc, k.TimeFields...); err != nil {
		return err
	}
	return db.Collection(k.Collection).InsertOne(ctx, doc)
}

// List returns matching records in store order, never more than the store's
// find cap.
func (k Kind[T]) List(ctx context.Context, db docstore.Store, filter docstore.Filter) ([]T, error) {
	docs, err := db.Collection(k.Collection).Find(ctx, filter, docstore.FindLimit)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := k.hydrate(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (k Kind[T]) Get(ctx context.Context, db docstore.Store, id string) (T, error) {
	var zero T
	doc, err := db.Collection(k.Collection).FindOne(ctx, docstore.Filter{"id": id})
	if errors.Is(err, docstore.ErrNoDocuments) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return k.hydrate(doc)
}

// First returns the first record matching filter, or ErrNotFound.
func (k Kind[T]) First(ctx context.Context, db docstore.Store, filter docstore.Filter) (T, error) {
	var zero T
	doc, err := db.Collection(k.Collection).FindOne(ctx, filter)
	if errors.Is(err, docstore.ErrNoDocuments) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return k.hydrate(doc)
}

// Update merges the fields of patch (a struct or map) into the record with
// the given id. ErrNotFound when no record matches; nothing is written in
// that case.
func (k Kind[T]) Update(ctx context.Context, db docstore.Store, id string, patch any) error {
	set, err := toDoc(patch)
	if err != nil {
		return err
	}
	if err := wiretime.Rehydrate(set, k.TimeFields...); err != nil {
		return err
	}
	matched, err := db.Collection(k.Collection).UpdateOne(ctx, docstore.Filter{"id": id}, set)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (k Kind[T]) hydrate(doc map[string]any) (T, error) {
	var rec T
	if err := wiretime.Rehydrate(doc, k.TimeFields...); err != nil {
		return rec, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("hydrate %s: %w", k.Collection, err)
	}
	return rec, nil
}

func toDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
