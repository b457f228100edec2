package storage

import (
	"context"
	"errors"
	"fmt"

	"video_syncer/internal/domain"
)

const knownIDsField = "video_id"

// KnownIDStore keeps the ID index document of a collection.
type KnownIDStore struct {
	docs       DocumentStore
	collection string
	document   string
	countField string
}

func NewKnownIDStore(docs DocumentStore, collection, document, countField string) *KnownIDStore {
	return &KnownIDStore{
		docs:       docs,
		collection: collection,
		document:   document,
		countField: countField,
	}
}

// Load returns an empty set when the index document does not exist yet.
func (s *KnownIDStore) Load(ctx context.Context) (domain.KnownIDs, error) {
	doc, err := s.docs.Get(ctx, s.collection, s.document)
	if errors.Is(err, ErrNotFound) {
		return domain.NewKnownIDs(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", s.collection, s.document, err)
	}

	ids, err := stringSlice(doc.Fields[knownIDsField])
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", s.collection, s.document, err)
	}

	return domain.NewKnownIDs(ids...), nil
}

// Save adds ids to the stored list and refreshes its count. IDs written
// by another process since Load are kept.
func (s *KnownIDStore) Save(ctx context.Context, ids domain.KnownIDs) error {
	if err := s.docs.AddToSet(ctx, s.collection, s.document, knownIDsField, ids.Sorted(), s.countField); err != nil {
		return fmt.Errorf("set %s/%s: %w", s.collection, s.document, err)
	}
	return nil
}
