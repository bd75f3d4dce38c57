// Package platform implements the social platform connectors and their
// registry. Each connector encapsulates one provider's OAuth dance and
// publish call behind a shared capability set; provider or transport faults
// never escape a connector as a panic or error chain — callbacks report a
// boolean and publishes report a PostResult.
//
// Connectors hold no credential state of their own: they re-read the token
// store on every operation, so a concurrent disconnect/post race resolves to
// last-read-wins rather than being serialized.
package platform

import (
	"context"

	"github.com/socialdraft/go-social-backend/internal/domain"
)

// TokenStore is the credential persistence contract connectors depend on.
// The flat-file store in internal/store satisfies it.
type TokenStore interface {
	// Tokens returns the current credential records.
	Tokens() (domain.PlatformTokens, error)
	// SaveLinkedIn overwrites the LinkedIn credential record.
	SaveLinkedIn(tok *domain.LinkedInToken) error
	// SaveFacebook overwrites the Facebook credential record.
	SaveFacebook(tok *domain.FacebookToken) error
	// Delete removes the named platform's record; absence is not an error.
	Delete(platform string) error
}

// PostResult is the transient outcome of a publish call. It is translated
// into a history entry by the caller and never persisted directly.
type PostResult struct {
	Success bool   `json:"success"`
	PostID  string `json:"postId,omitempty"`
	Error   string `json:"error,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Config describes a platform's static presentation and limits.
type Config struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	MaxLength   int    `json:"maxLength,omitempty"`
}

// Connector is the capability set every platform variant implements.
type Connector interface {
	// Config returns static platform metadata.
	Config() Config

	// IsAuthenticated reads the token store and reports whether the stored
	// record has its required fields and a still-valid expiry. No network
	// call is made.
	IsAuthenticated() bool

	// AuthURL deterministically builds the provider's authorization URL from
	// static client configuration. No side effects.
	AuthURL() string

	// HandleCallback exchanges an authorization code for tokens, extracts
	// the identifiers needed for publishing, and writes the credential
	// record. It returns false on any exchange or parse failure; the caller
	// surfaces the failure.
	HandleCallback(ctx context.Context, code string) bool

	// Post publishes content with exactly one provider call, or returns a
	// failure result without any network call when required credentials are
	// missing. It never retries.
	Post(ctx context.Context, content string) PostResult

	// Disconnect deletes the platform's credential record unconditionally.
	Disconnect() error
}

// Registry maps platform names to connector instances. It is constructed
// once at process start and never mutated afterwards.
type Registry struct {
	byName map[string]Connector
	order  []string
}

// NewRegistry builds a registry over the given connectors, preserving their
// order for enumeration.
func NewRegistry(connectors ...Connector) *Registry {
	r := &Registry{byName: make(map[string]Connector, len(connectors))}
	for _, c := range connectors {
		name := c.Config().Name
		if _, dup := r.byName[name]; dup {
			continue
		}
		r.byName[name] = c
		r.order = append(r.order, name)
	}
	return r
}

// Get returns the connector registered under name. An unknown name is
// absence, not a fault.
func (r *Registry) Get(name string) (Connector, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// All enumerates the registered connectors in registration order, for bulk
// status queries.
func (r *Registry) All() []Connector {
	out := make([]Connector, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered platform names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
