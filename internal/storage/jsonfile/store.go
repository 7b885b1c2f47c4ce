// Package jsonfile persists the entire dataset as a single JSON document on
// disk, rewritten wholesale on every mutation. It is the default mock
// document store; the postgres repositories are the hosted alternative.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"noion/internal/domain"
	"noion/internal/domain/models"
)

// Store owns one storage file. Every load-mutate-save cycle runs under the
// store mutex, so concurrent repository operations cannot overwrite each
// other's writes. Construct one instance per process and inject it.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a store backed by the given file path. The file and its parent
// directory are created lazily on first access.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current dataset. A missing file initializes and persists
// an empty dataset; an unparsable file is overwritten with an empty dataset
// and the reset is logged, not escalated.
func (s *Store) Load(ctx context.Context) (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save serializes the dataset and atomically replaces the persisted form.
func (s *Store) Save(ctx context.Context, ds *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, ds)
}

// Update runs one read-modify-write transaction: fn mutates the loaded
// dataset in place and the result is persisted, all under the store mutex.
// Returning an error from fn aborts without saving.
func (s *Store) Update(ctx context.Context, fn func(ds *models.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.saveLocked(ctx, ds)
}

func (s *Store) loadLocked(ctx context.Context) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		ds := models.NewDataset()
		if err := s.saveLocked(ctx, ds); err != nil {
			return nil, err
		}
		return ds, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: err}
	}

	var ds models.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		// Accepted data-loss-on-corruption policy: reset to empty rather
		// than fail every request against an unreadable file.
		s.logger.Warn("storage file unparsable, resetting to empty dataset",
			"path", s.path,
			"error", err,
		)
		fresh := models.NewDataset()
		if err := s.saveLocked(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}

	if ds.Pages == nil {
		ds.Pages = []models.Page{}
	}
	if ds.Blocks == nil {
		ds.Blocks = []models.Block{}
	}
	return &ds, nil
}

func (s *Store) saveLocked(ctx context.Context, ds *models.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &domain.StorageError{Op: "mkdir", Err: err}
	}

	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return &domain.StorageError{Op: "encode", Err: err}
	}

	// Write to a temp file in the same directory, then rename over the
	// target so readers never observe a partial write.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), fmt.Sprintf(".%s-*", filepath.Base(s.path)))
	if err != nil {
		return &domain.StorageError{Op: "create", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.StorageError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "close", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "rename", Err: err}
	}
	return nil
}
