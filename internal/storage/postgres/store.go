package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"video_syncer/internal/storage"
)

// Store keeps documents as JSONB rows keyed by (collection, id).
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

func (r documentRow) document() (storage.Document, error) {
	fields := make(map[string]any)
	if err := json.Unmarshal(r.Data, &fields); err != nil {
		return storage.Document{}, fmt.Errorf("decode document %s: %w", r.ID, err)
	}
	return storage.Document{ID: r.ID, Fields: fields}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Document{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, err
	}
	return row.document()
}

// FindOne matches on the text form of the field, which covers the string
// discriminators the pointer documents use.
func (s *Store) FindOne(ctx context.Context, collection, field string, value any) (storage.Document, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, data FROM documents
		WHERE collection = $1 AND data->>$2 = $3
		ORDER BY id
		LIMIT 1`,
		collection, field, fmt.Sprint(value),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Document{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, err
	}
	return row.document()
}

func (s *Store) SetMerge(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = documents.data || EXCLUDED.data,
			updated_at = NOW()`

	_, err = s.db.ExecContext(ctx, query, collection, id, string(data))
	return err
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2`,
		collection, id, string(data),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, string(data),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// AddToSet locks the row for the read-merge-write so concurrent writers
// cannot drop each other's elements.
func (s *Store) AddToSet(ctx context.Context, collection, id, field string, values []string, countField string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (collection, id) VALUES ($1, $2)
		ON CONFLICT (collection, id) DO NOTHING`,
		collection, id,
	)
	if err != nil {
		return err
	}

	var row documentRow
	err = tx.GetContext(ctx, &row,
		`SELECT id, data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
		collection, id,
	)
	if err != nil {
		return err
	}
	doc, err := row.document()
	if err != nil {
		return err
	}

	merged, err := storage.UnionStrings(doc.Fields[field], values)
	if err != nil {
		return fmt.Errorf("%s/%s.%s: %w", collection, id, field, err)
	}

	fields := map[string]any{field: merged}
	if countField != "" {
		fields[countField] = len(merged)
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2`,
		collection, id, string(data),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

var _ storage.DocumentStore = (*Store)(nil)
