package service

import (
	"context"

	"video_syncer/internal/storage/memory"
)

// cancelOnCreateStore cancels the run context on the first insert and
// refuses index writes made on a done context.
type cancelOnCreateStore struct {
	*memory.Store
	cancel context.CancelFunc
}

func (s *cancelOnCreateStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	s.cancel()
	return s.Store.Create(ctx, collection, fields)
}

func (s *cancelOnCreateStore) SetMerge(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Store.SetMerge(ctx, collection, id, fields)
}

func (s *cancelOnCreateStore) AddToSet(ctx context.Context, collection, id, field string, values []string, countField string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Store.AddToSet(ctx, collection, id, field, values, countField)
}

// countingStore counts Update calls.
type countingStore struct {
	*memory.Store
	updates int
}

func (s *countingStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.updates++
	return s.Store.Update(ctx, collection, id, fields)
}
