// Package firestore implements storage.DocumentStore on Cloud Firestore.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gcfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"video_syncer/internal/storage"
)

type Store struct {
	client *gcfs.Client
}

// Open connects with a service account key. The project is taken from the
// key's project_id.
func Open(ctx context.Context, credentialsJSON []byte, opts ...option.ClientOption) (*Store, error) {
	projectID, err := ProjectID(credentialsJSON)
	if err != nil {
		return nil, err
	}

	opts = append([]option.ClientOption{option.WithCredentialsJSON(credentialsJSON)}, opts...)
	client, err := gcfs.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// NewStore wraps an existing client.
func NewStore(client *gcfs.Client) *Store {
	return &Store{client: client}
}

func ProjectID(credentialsJSON []byte) (string, error) {
	var key struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(credentialsJSON, &key); err != nil {
		return "", fmt.Errorf("decode service account: %w", err)
	}
	if key.ProjectID == "" {
		return "", errors.New("service account has no project_id")
	}
	return key.ProjectID, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return storage.Document{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, err
	}
	return storage.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *Store) FindOne(ctx context.Context, collection, field string, value any) (storage.Document, error) {
	iter := s.client.Collection(collection).
		Where(field, "==", value).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return storage.Document{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, err
	}
	return storage.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *Store) SetMerge(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, fields, gcfs.MergeAll)
	return err
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]gcfs.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, gcfs.Update{Path: path, Value: value})
	}

	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return storage.ErrNotFound
	}
	return err
}

func (s *Store) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// AddToSet reads and rewrites the array in a transaction so the count
// matches the merged list.
func (s *Store) AddToSet(ctx context.Context, collection, id, field string, values []string, countField string) error {
	ref := s.client.Collection(collection).Doc(id)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfs.Transaction) error {
		var stored any
		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			stored = snap.Data()[field]
		}

		merged, err := storage.UnionStrings(stored, values)
		if err != nil {
			return fmt.Errorf("%s/%s.%s: %w", collection, id, field, err)
		}

		fields := map[string]any{field: merged}
		if countField != "" {
			fields[countField] = len(merged)
		}
		return tx.Set(ref, fields, gcfs.MergeAll)
	})
}

var _ storage.DocumentStore = (*Store)(nil)
