// Package indicators persists the collected indicator list as a single JSON
// array file.
package indicators

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Record is one collected indicator. Records are append-only; nothing in this
// package rewrites or removes an existing entry.
type Record struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// ErrEmptyField is returned when a record arrives with an empty name or id.
var ErrEmptyField = errors.New("indicator record has empty name or id")

// Store owns one list file. The mutex serializes the read-append-write cycle
// within this process; no cross-process locking is attempted.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store for the given list file. The file is not touched
// until the first Load or Append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the list file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full indicator list. A missing file reads as an empty list;
// any other I/O or parse failure is returned as-is.
func (s *Store) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("indicators: read %s: %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("indicators: parse %s: %w", s.path, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Append adds one record to the end of the list and rewrites the file with
// 4-space indentation. Records with an empty name or id are rejected.
func (s *Store) Append(rec Record) error {
	if rec.Name == "" || rec.ID == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("indicators: marshal list: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("indicators: mkdir %s: %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("indicators: write %s: %w", s.path, err)
	}

	slog.Info("indicator appended", "name", rec.Name, "id", rec.ID, "count", len(records))
	return nil
}

// Len reports the number of stored records.
func (s *Store) Len() (int, error) {
	records, err := s.Load()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
