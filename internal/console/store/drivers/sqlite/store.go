package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/foriam/console/internal/console/store"
	_ "modernc.org/sqlite"
)

// Store is a Storage backed by a single SQLite table.
type Store struct {
	db  *sql.DB
	dsn string
	now func() time.Time
}

var _ store.Storage = (*Store)(nil)

// NewStore opens the database at dsn. Call ApplyMigrations before use.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// one connection serialises writers and keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	return &Store{
		db:  db,
		dsn: dsn,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, store.ErrInvalidKey
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM storage_items WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage_items (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now(),
	)
	return err
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM storage_items WHERE key = ?`, key)
	return err
}

// UpdatedAt returns when key was last written, or the zero time if it is absent.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var t time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT updated_at FROM storage_items WHERE key = ?`, key,
	).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	return t, err
}
