package docstore

import (
	"context"
	"reflect"
	"sync"
)

// Memory is an in-process Store with the same observable behavior as the
// Postgres implementation. It backs the package tests and the handler
// tests; nothing about it is safe to persist.
type Memory struct {
	mu          sync.Mutex
	collections map[string][]map[string]any
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]map[string]any)}
}

func (m *Memory) Collection(name string) Collection {
	return &memCollection{store: m, name: name}
}

type memCollection struct {
	store *Memory
	name  string
}

func (c *memCollection) InsertOne(_ context.Context, doc map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.collections[c.name] = append(c.store.collections[c.name], copyDoc(doc))
	return nil
}

func (c *memCollection) Find(_ context.Context, filter Filter, limit int) ([]map[string]any, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	limit = clampLimit(limit)
	var docs []map[string]any
	for _, doc := range c.store.collections[c.name] {
		if !matches(doc, filter) {
			continue
		}
		docs = append(docs, copyDoc(doc))
		if len(docs) == limit {
			break
		}
	}
	return docs, nil
}

func (c *memCollection) FindOne(_ context.Context, filter Filter) (map[string]any, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, doc := range c.store.collections[c.name] {
		if matches(doc, filter) {
			return copyDoc(doc), nil
		}
	}
	return nil, ErrNoDocuments
}

func (c *memCollection) UpdateOne(_ context.Context, filter Filter, set map[string]any) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, doc := range c.store.collections[c.name] {
		if !matches(doc, filter) {
			continue
		}
		for key, value := range set {
			doc[key] = value
		}
		return true, nil
	}
	return false, nil
}

func matches(doc map[string]any, filter Filter) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	return out
}
