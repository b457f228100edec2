package storage

import (
	"context"
	"fmt"

	"video_syncer/internal/domain"
)

type VideoStore struct {
	docs       DocumentStore
	collection string
}

func NewVideoStore(docs DocumentStore, collection string) *VideoStore {
	return &VideoStore{docs: docs, collection: collection}
}

func (s *VideoStore) Collection() string {
	return s.collection
}

// Insert creates a new video document and returns its ID.
func (s *VideoStore) Insert(ctx context.Context, record domain.VideoRecord) (string, error) {
	id, err := s.docs.Create(ctx, s.collection, record.Fields())
	if err != nil {
		return "", fmt.Errorf("create in %s: %w", s.collection, err)
	}
	return id, nil
}
