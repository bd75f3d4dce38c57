// Package store – platform credentials.
//
// This file owns the OAuth credential records. The token store is the only
// writer of platforms.json; connectors re-read it before every operation and
// never cache tokens beyond a single call.
package store

import (
	"github.com/socialdraft/go-social-backend/internal/domain"
)

const tokensFile = "platforms.json"

// Platform name keys used in platforms.json and in the connector registry.
const (
	PlatformLinkedIn = "linkedin"
	PlatformFacebook = "facebook"
)

// TokenStore persists domain.PlatformTokens in platforms.json.
type TokenStore struct {
	*Store
}

// NewTokenStore returns a TokenStore over the given base store.
func NewTokenStore(s *Store) *TokenStore { return &TokenStore{Store: s} }

// Tokens returns the current credential records. An absent file yields the
// zero value (no platform connected).
func (s *TokenStore) Tokens() (domain.PlatformTokens, error) {
	var tokens domain.PlatformTokens
	if err := s.readJSON(tokensFile, &tokens); err != nil {
		return domain.PlatformTokens{}, err
	}
	return tokens, nil
}

// SaveLinkedIn overwrites the LinkedIn credential record.
func (s *TokenStore) SaveLinkedIn(tok *domain.LinkedInToken) error {
	tokens, err := s.Tokens()
	if err != nil {
		return err
	}
	tokens.LinkedIn = tok
	return s.writeJSON(tokensFile, tokens)
}

// SaveFacebook overwrites the Facebook credential record.
func (s *TokenStore) SaveFacebook(tok *domain.FacebookToken) error {
	tokens, err := s.Tokens()
	if err != nil {
		return err
	}
	tokens.Facebook = tok
	return s.writeJSON(tokensFile, tokens)
}

// Delete removes the credential record for the named platform. Deleting an
// absent record is not an error.
func (s *TokenStore) Delete(platform string) error {
	tokens, err := s.Tokens()
	if err != nil {
		return err
	}
	switch platform {
	case PlatformLinkedIn:
		tokens.LinkedIn = nil
	case PlatformFacebook:
		tokens.Facebook = nil
	}
	return s.writeJSON(tokensFile, tokens)
}
