// Package history persists which article URLs were already used for which
// period, across process restarts.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mailmix/internal/logger"
)

// Record maps a period key ("YYYY-MM") to the ordered sequence of URLs
// already sent for that period. The sequence is append-only and keeps
// duplicates; membership checks go through UsedSet.
type Record map[string][]string

// Store owns the persisted history file. Nothing else mutates it.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path. The file is not
// touched until the first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the history file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. A missing or unparseable file is treated
// as empty history, never as an error.
func (s *Store) Load() Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warn("History file unparseable, starting with empty history", "path", s.path)
		return Record{}
	}
	if rec == nil {
		rec = Record{}
	}
	return rec
}

// Save persists the full record, replacing prior state. The record is
// written to a temp file in the target directory and renamed into place so
// a crash mid-write cannot leave a torn file behind.
func (s *Store) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// Clear removes all persisted history. Clearing a missing file is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}

// RecordUsed appends urls to the sequence for key, creating the key if
// absent, and persists the result. Duplicates are kept: the stored sequence
// is an audit log, not a set.
func (s *Store) RecordUsed(rec Record, key string, urls []string) error {
	rec[key] = append(rec[key], urls...)
	return s.Save(rec)
}

// UsedSet returns the set of URLs recorded for key. Duplicate entries in
// the stored sequence collapse here, so they never affect filtering.
func UsedSet(rec Record, key string) map[string]struct{} {
	used := make(map[string]struct{}, len(rec[key]))
	for _, u := range rec[key] {
		used[u] = struct{}{}
	}
	return used
}

// Keys returns the record's period keys, newest first.
func Keys(rec Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
