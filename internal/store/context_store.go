// Package store – context entries.
//
// This file provides CRUD persistence for business context entries. Entries
// are appended in insertion order and mutated in place; ids are UUIDs
// assigned on create.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/socialdraft/go-social-backend/internal/domain"
)

const contextFile = "context.json"

// ContextStore persists domain.ContextEntry records in context.json.
type ContextStore struct {
	*Store
}

// NewContextStore returns a ContextStore over the given base store.
func NewContextStore(s *Store) *ContextStore { return &ContextStore{Store: s} }

// List returns all context entries in insertion order. An absent file yields
// an empty slice.
func (s *ContextStore) List() ([]domain.ContextEntry, error) {
	entries := []domain.ContextEntry{}
	if err := s.readJSON(contextFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *ContextStore) Get(id string) (*domain.ContextEntry, error) {
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

// Create appends a new entry with a fresh UUID and UTC timestamps and
// returns it.
func (s *ContextStore) Create(typ domain.ContextType, title, content string) (*domain.ContextEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	entry := domain.ContextEntry{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	entries = append(entries, entry)
	if err := s.writeJSON(contextFile, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ContextUpdate carries the mutable fields of a context entry. Nil fields
// are left unchanged.
type ContextUpdate struct {
	Type    *domain.ContextType
	Title   *string
	Content *string
}

// Update mutates the entry with the given id in place, refreshing UpdatedAt,
// and returns the updated entry. Returns ErrNotFound when the id is unknown.
func (s *ContextStore) Update(id string, upd ContextUpdate) (*domain.ContextEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if upd.Type != nil {
			entries[i].Type = *upd.Type
		}
		if upd.Title != nil {
			entries[i].Title = *upd.Title
		}
		if upd.Content != nil {
			entries[i].Content = *upd.Content
		}
		entries[i].UpdatedAt = time.Now().UTC()
		if err := s.writeJSON(contextFile, entries); err != nil {
			return nil, err
		}
		return &entries[i], nil
	}
	return nil, ErrNotFound
}

// Delete removes the entry with the given id. Returns ErrNotFound when no
// entry matched.
func (s *ContextStore) Delete(id string) error {
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
	return s.writeJSON(contextFile, kept)
}
