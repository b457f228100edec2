// Package memory is an in-process document store for dry runs and tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	"video_syncer/internal/storage"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

func New() *Store {
	return &Store{collections: make(map[string]map[string]map[string]any)}
}

func (s *Store) Get(_ context.Context, collection, id string) (storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return storage.Document{}, storage.ErrNotFound
	}
	return storage.Document{ID: id, Fields: maps.Clone(fields)}, nil
}

func (s *Store) FindOne(_ context.Context, collection, field string, value any) (storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	for _, id := range slices.Sorted(maps.Keys(docs)) {
		if v, ok := docs[id][field]; ok && reflect.DeepEqual(v, value) {
			return storage.Document{ID: id, Fields: maps.Clone(docs[id])}, nil
		}
	}
	return storage.Document{}, storage.ErrNotFound
}

func (s *Store) SetMerge(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collection(collection)
	existing, ok := docs[id]
	if !ok {
		existing = make(map[string]any, len(fields))
		docs[id] = existing
	}
	maps.Copy(existing, fields)
	return nil
}

func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok {
		return storage.ErrNotFound
	}
	maps.Copy(existing, fields)
	return nil
}

func (s *Store) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.collection(collection)[id] = maps.Clone(fields)
	return id, nil
}

func (s *Store) AddToSet(_ context.Context, collection, id, field string, values []string, countField string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collection(collection)
	existing, ok := docs[id]
	if !ok {
		existing = make(map[string]any)
		docs[id] = existing
	}

	merged, err := storage.UnionStrings(existing[field], values)
	if err != nil {
		return fmt.Errorf("%s/%s.%s: %w", collection, id, field, err)
	}
	existing[field] = merged
	if countField != "" {
		existing[countField] = len(merged)
	}
	return nil
}

// Put seeds a document with a known ID.
func (s *Store) Put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = maps.Clone(fields)
}

// Count returns the number of documents in a collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// All returns a copy of every document in a collection.
func (s *Store) All(collection string) []storage.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]storage.Document, 0, len(docs))
	for _, id := range slices.Sorted(maps.Keys(docs)) {
		out = append(out, storage.Document{ID: id, Fields: maps.Clone(docs[id])})
	}
	return out
}

func (s *Store) collection(name string) map[string]map[string]any {
	docs, ok := s.collections[name]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[name] = docs
	}
	return docs
}

var _ storage.DocumentStore = (*Store)(nil)
