package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tablewright/seatplan/pkg/errors"
)

// FileStore is a file-based plan store for CLI use.
// Plans are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based plan store.
// If baseDir is empty, defaults to ~/.config/seatplan/plans/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "seatplan", "plans")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create plan dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) planPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get returns the saved plan with the given name, or nil when none exists.
func (s *FileStore) Get(ctx context.Context, name string) (*Record, error) {
	if err := errors.ValidatePlanName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.planPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	return &rec, nil
}

// Set saves a record, replacing any existing record of the same name.
func (s *FileStore) Set(ctx context.Context, rec *Record) error {
	if err := errors.ValidatePlanName(rec.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.WriteFile(s.planPath(rec.Name), data, 0600); err != nil {
		return fmt.Errorf("write plan file: %w", err)
	}
	return nil
}

// Delete removes a saved plan. Deleting an absent name is not an error.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidatePlanName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.planPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove plan file: %w", err)
	}
	return nil
}

// List returns the saved plan names in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read plan dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Close does nothing for file stores.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for plan files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
