// Package workspace persists each user's dashboard datasets in a local
// SQLite database. Seeding is insert-if-absent so edits made in earlier
// sessions always survive a re-login.
package workspace

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a user has no value for a dataset.
var ErrNotFound = errors.New("workspace: dataset not found")

const databaseFile = "workspace.db"

// Store exposes persistence operations for workspace datasets.
type Store struct {
	db *bun.DB
}

// NewStore wraps an existing database handle. Callers own the handle.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Open creates the data directory if needed, opens the workspace database
// inside it, and applies migrations.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := NewDB(filepath.Join(dataDir, databaseFile))
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SeedDefaults writes the default datasets for a user, skipping every
// dataset that already has a value. Safe to call on every login.
func (s *Store) SeedDefaults(ctx context.Context, subjectID string) error {
	now := time.Now()
	for _, ds := range DefaultSeed() {
		value, err := json.Marshal(ds.Value)
		if err != nil {
			return fmt.Errorf("marshal seed dataset %s: %w", ds.Name, err)
		}

		entry := &Entry{
			Key:       EntryKey(subjectID, ds.Name),
			SubjectID: subjectID,
			Dataset:   ds.Name,
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err = s.db.NewInsert().
			Model(entry).
			On("CONFLICT (key) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("seed dataset %s: %w", ds.Name, err)
		}
	}
	return nil
}

// Get returns the stored value for a user's dataset.
func (s *Store) Get(ctx context.Context, subjectID, dataset string) (json.RawMessage, error) {
	entry := new(Entry)
	err := s.db.NewSelect().
		Model(entry).
		Where("key = ?", EntryKey(subjectID, dataset)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get dataset %s: %w", dataset, err)
	}
	return entry.Value, nil
}

// Put stores a value for a user's dataset, overwriting any previous value.
func (s *Store) Put(ctx context.Context, subjectID, dataset string, value json.RawMessage) error {
	now := time.Now()
	entry := &Entry{
		Key:       EntryKey(subjectID, dataset),
		SubjectID: subjectID,
		Dataset:   dataset,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("put dataset %s: %w", dataset, err)
	}
	return nil
}

// List returns all datasets belonging to a user, ordered by name.
func (s *Store) List(ctx context.Context, subjectID string) ([]Entry, error) {
	var entries []Entry
	err := s.db.NewSelect().
		Model(&entries).
		Where("subject_id = ?", subjectID).
		Order("dataset ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return entries, nil
}
