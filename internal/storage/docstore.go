// Package storage defines the document store contract and the typed
// repositories the sync jobs use on top of it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var ErrNotFound = errors.New("document not found")

// Document is a stored document and its fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is a collection-oriented key/value document store.
type DocumentStore interface {
	// Get returns ErrNotFound if the document does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)
	// FindOne returns the first document whose field equals value.
	FindOne(ctx context.Context, collection, field string, value any) (Document, error)
	// SetMerge creates the document or merges fields into it, keeping
	// fields that are not named.
	SetMerge(ctx context.Context, collection, id string, fields map[string]any) error
	// Update changes fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Create stores a new document under a generated ID.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	// AddToSet adds values to the string array field, creating the
	// document if needed, without dropping elements already stored. When
	// countField is set it receives the length of the resulting array.
	AddToSet(ctx context.Context, collection, id, field string, values []string, countField string) error
}

// UnionStrings returns the sorted union of a stored array value and values.
func UnionStrings(stored any, values []string) ([]string, error) {
	existing, err := stringSlice(stored)
	if err != nil {
		return nil, err
	}

	merged := slices.Concat(existing, values)
	slices.Sort(merged)
	return slices.Compact(merged), nil
}

func stringSlice(v any) ([]string, error) {
	switch vals := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return vals, nil
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected id type %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected field type %T", v)
	}
}
