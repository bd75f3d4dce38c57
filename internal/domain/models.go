// Package domain defines the persisted record shapes for business context
// entries, post history, and per-platform OAuth credentials. These types are
// serialized as JSON into flat files by the store layer and form the core
// data model of the application.
package domain

import "time"

// ContextType classifies a business context entry.
type ContextType string

// Allowed context entry types.
const (
	ContextBusiness ContextType = "business"
	ContextEvent    ContextType = "event"
	ContextDate     ContextType = "date"
	ContextGeneral  ContextType = "general"
)

// ValidContextType reports whether t is one of the allowed context types.
func ValidContextType(t ContextType) bool {
	switch t {
	case ContextBusiness, ContextEvent, ContextDate, ContextGeneral:
		return true
	}
	return false
}

// ContextEntry is a user-authored piece of business context that is fed to
// the generation prompt. Entries keep their insertion order; titles are not
// unique.
//
// Fields:
//   - ID: stable UUID.
//   - Type: one of business, event, date, general.
//   - Title / Content: free text authored by the operator.
//   - CreatedAt / UpdatedAt: set on create; UpdatedAt refreshed on mutation.
type ContextEntry struct {
	ID        string      `json:"id"`
	Type      ContextType `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PostStatus is the outcome recorded for a post history entry.
type PostStatus string

// Allowed post history statuses.
const (
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
	StatusFailed    PostStatus = "failed"
)

// ValidPostStatus reports whether s is one of the allowed statuses.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case StatusPublished, StatusDraft, StatusFailed:
		return true
	}
	return false
}

// PostHistoryEntry records one publish attempt (successful or not) or a
// manually logged post. The store keeps entries most-recent-first; only the
// newest entries are consulted when generating new content.
//
// AbbreviatedContent is a short summary (about 100 chars by convention, not
// enforced here) used as compact context for future generations.
type PostHistoryEntry struct {
	ID                 string     `json:"id"`
	Platform           string     `json:"platform"`
	AbbreviatedContent string     `json:"abbreviatedContent"`
	FullContent        string     `json:"fullContent"`
	PostedAt           time.Time  `json:"postedAt"`
	Status             PostStatus `json:"status"`
}

// LinkedInToken holds the LinkedIn OAuth credential record. UserID is the
// OpenID subject used as the UGC post author.
type LinkedInToken struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	UserID       string     `json:"userId,omitempty"`
}

// FacebookToken holds the Facebook OAuth credential record. Publishing
// happens as the page, not the user, so the page id and page-scoped token
// are stored alongside the user access token.
type FacebookToken struct {
	AccessToken     string     `json:"accessToken"`
	PageID          string     `json:"pageId,omitempty"`
	PageAccessToken string     `json:"pageAccessToken,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
}

// PlatformTokens maps each supported platform to its credential record.
// A nil record means the platform is not connected. Records are overwritten
// on a successful OAuth callback and removed on disconnect; they are re-read
// from disk before every operation, so concurrent writers resolve to
// last-write-wins.
type PlatformTokens struct {
	LinkedIn *LinkedInToken `json:"linkedin,omitempty"`
	Facebook *FacebookToken `json:"facebook,omitempty"`
}
