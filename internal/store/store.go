// Package store implements the data persistence layer for domain records,
// backed by flat JSON files in a single data directory. This file contains
// the shared file helpers used by the context, history, and token stores.
//
// The on-disk layout mirrors the collateral the rest of the app consumes:
//
//	data/
//	  context.json       — array of domain.ContextEntry, insertion order
//	  post-history.json  — array of domain.PostHistoryEntry, newest first
//	  platforms.json     — domain.PlatformTokens keyed by platform name
//
// Error semantics:
//   - A missing or unreadable file reads as the zero value; absence of data
//     is a normal outcome, not a fault.
//   - Writes replace the whole file. There is no locking: concurrent
//     read-modify-write sequences are last-write-wins, which is the accepted
//     policy for this single-operator tool.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by id lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Store provides JSON-file persistence rooted at a data directory. The
// concrete context/history/token stores embed it for file access.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// readJSON decodes the named file into out. A missing or malformed file
// leaves out untouched and returns nil, so callers start from their zero
// value.
func (s *Store) readJSON(name string, out any) error {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil
	}
	if jsonErr := json.Unmarshal(b, out); jsonErr != nil {
		return nil
	}
	return nil
}

// writeJSON replaces the named file with the pretty-printed JSON encoding
// of v.
func (s *Store) writeJSON(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), b, 0o644)
}
