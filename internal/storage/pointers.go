package storage

import (
	"context"
	"errors"
	"fmt"

	"video_syncer/internal/domain"
)

var ErrPointerNotFound = errors.New("pointer document not found")

// PointerStore reads and overwrites the singleton pointer document selected
// by field == value.
type PointerStore struct {
	docs       DocumentStore
	collection string
	field      string
	value      string
}

func NewPointerStore(docs DocumentStore, collection, field, value string) *PointerStore {
	return &PointerStore{
		docs:       docs,
		collection: collection,
		field:      field,
		value:      value,
	}
}

func (s *PointerStore) Collection() string {
	return s.collection
}

// Find never creates the document; a missing one is ErrPointerNotFound.
func (s *PointerStore) Find(ctx context.Context) (*domain.Pointer, error) {
	doc, err := s.docs.FindOne(ctx, s.collection, s.field, s.value)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s where %s == %q", ErrPointerNotFound, s.collection, s.field, s.value)
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", s.collection, err)
	}

	url, _ := doc.Fields["url"].(string)
	return &domain.Pointer{ID: doc.ID, URL: url}, nil
}

func (s *PointerStore) Update(ctx context.Context, id string, record domain.PointerRecord) error {
	if err := s.docs.Update(ctx, s.collection, id, record.Fields()); err != nil {
		return fmt.Errorf("update %s/%s: %w", s.collection, id, err)
	}
	return nil
}
