// Package file implements the file-backed catalog store: a single JSON
// document parsed fresh on every read so it always reflects the latest
// on-disk state.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/okazakov/boardwire-server/internal/catalog"
)

// document is the on-disk layout: {"quizzes": [...]}.
type document struct {
	Quizzes []catalog.Quiz `json:"quizzes"`
}

// Store implements catalog.Store over a JSON file. Reads parse the file on
// every call; writes rewrite the whole file atomically under a mutex, so
// concurrent Creates never corrupt it.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a file store for the given path. A missing file reads as an
// empty catalog; it is created on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Load parses the quiz document at path. It is also used by the database
// backend to read the bundled seed file.
func Load(path string) ([]catalog.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read quiz file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse quiz file: %w", err)
	}
	return doc.Quizzes, nil
}

// List returns all quizzes from the backing file.
func (s *Store) List(_ context.Context) ([]catalog.Quiz, error) {
	return Load(s.path)
}

// Get returns the first quiz whose id matches, or catalog.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*catalog.Quiz, error) {
	quizzes, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

// Create appends the quiz and rewrites the backing file. The rewrite goes
// through a temp file in the same directory and a rename, so a crash
// mid-write never truncates the catalog.
func (s *Store) Create(_ context.Context, quiz catalog.Quiz) (*catalog.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	quizzes = append(quizzes, quiz)

	if err := s.rewrite(document{Quizzes: quizzes}); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Mode reports catalog.ModeFile.
func (s *Store) Mode() catalog.Mode {
	return catalog.ModeFile
}

// Close is a no-op for the file backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) rewrite(doc document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create quiz dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".quizzes-*.json")
	if err != nil {
		return fmt.Errorf("create temp quiz file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode quiz file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync quiz file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp quiz file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace quiz file: %w", err)
	}
	return nil
}
