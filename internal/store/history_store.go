// Package store – post history.
//
// This file provides persistence for post history entries. New entries are
// prepended so the file stays most-recent-first; readers that want "the 10
// latest posts" simply take the head of the slice.
package store

import (
	"github.com/google/uuid"

	"github.com/socialdraft/go-social-backend/internal/domain"
)

const historyFile = "post-history.json"

// HistoryStore persists domain.PostHistoryEntry records in post-history.json.
type HistoryStore struct {
	*Store
}

// NewHistoryStore returns a HistoryStore over the given base store.
func NewHistoryStore(s *Store) *HistoryStore { return &HistoryStore{Store: s} }

// List returns all history entries, newest first. An absent file yields an
// empty slice.
func (s *HistoryStore) List() ([]domain.PostHistoryEntry, error) {
	entries := []domain.PostHistoryEntry{}
	if err := s.readJSON(historyFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *HistoryStore) Get(id string) (*domain.PostHistoryEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create prepends a new entry with a fresh UUID and returns it.
func (s *HistoryStore) Create(entry domain.PostHistoryEntry) (*domain.PostHistoryEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.NewString()
	entries = append([]domain.PostHistoryEntry{entry}, entries...)
	if err := s.writeJSON(historyFile, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// HistoryUpdate carries the mutable fields of a history entry. Nil fields
// are left unchanged.
type HistoryUpdate struct {
	Platform           *string
	AbbreviatedContent *string
	FullContent        *string
	Status             *domain.PostStatus
}

// Update mutates the entry with the given id in place and returns it.
// Returns ErrNotFound when the id is unknown.
func (s *HistoryStore) Update(id string, upd HistoryUpdate) (*domain.PostHistoryEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if upd.Platform != nil {
			entries[i].Platform = *upd.Platform
		}
		if upd.AbbreviatedContent != nil {
			entries[i].AbbreviatedContent = *upd.AbbreviatedContent
		}
		if upd.FullContent != nil {
			entries[i].FullContent = *upd.FullContent
		}
		if upd.Status != nil {
			entries[i].Status = *upd.Status
		}
		if err := s.writeJSON(historyFile, entries); err != nil {
			return nil, err
		}
		return &entries[i], nil
	}
	return nil, ErrNotFound
}

// Delete removes the entry with the given id. Returns ErrNotFound when no
// entry matched.
func (s *HistoryStore) Delete(id string) error {
	entries, err := s.List()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return ErrNotFound
	}
	return s.writeJSON(historyFile, kept)
}
