// Package platform – LinkedIn connector.
//
// Authorization-code flow against LinkedIn's identity endpoints, publishing
// through the UGC posts API. The callback exchanges the code, fetches the
// OpenID userinfo to learn the member URN, and stores the credential record;
// publishing addresses the share payload to that member with the Restli
// protocol-version header.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"

	"github.com/socialdraft/go-social-backend/internal/domain"
)

const (
	linkedinState      = "linkedin_auth"
	linkedinAPIBase    = "https://api.linkedin.com"
	linkedinPostURLFmt = "https://www.linkedin.com/feed/update/%s"
)

// LinkedInConnector publishes member posts via the UGC API.
type LinkedInConnector struct {
	// OAuth holds the static client configuration; AuthURL and the token
	// exchange are derived from it.
	OAuth *oauth2.Config
	// Tokens is re-read on every operation; nothing is cached.
	Tokens TokenStore
	// HTTP performs provider API calls (userinfo, ugcPosts).
	HTTP *http.Client
	// APIBase is the REST API origin; tests point it at a local server.
	APIBase string
}

// NewLinkedIn builds the LinkedIn connector for the given OAuth client
// credentials and redirect URI.
func NewLinkedIn(clientID, clientSecret, redirectURL string, tokens TokenStore) *LinkedInConnector {
	return &LinkedInConnector{
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "w_member_social"},
			Endpoint:     linkedin.Endpoint,
		},
		Tokens:  tokens,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		APIBase: linkedinAPIBase,
	}
}

// Config implements Connector.
func (c *LinkedInConnector) Config() Config {
	return Config{Name: "linkedin", DisplayName: "LinkedIn", MaxLength: 3000}
}

// IsAuthenticated implements Connector. It requires an access token and, when
// an expiry is recorded, that it lies strictly in the future.
func (c *LinkedInConnector) IsAuthenticated() bool {
	tokens, err := c.Tokens.Tokens()
	if err != nil || tokens.LinkedIn == nil || tokens.LinkedIn.AccessToken == "" {
		return false
	}
	if exp := tokens.LinkedIn.ExpiresAt; exp != nil && !exp.After(time.Now()) {
		return false
	}
	return true
}

// AuthURL implements Connector.
func (c *LinkedInConnector) AuthURL() string {
	return c.OAuth.AuthCodeURL(linkedinState)
}

// HandleCallback implements Connector. It exchanges the code, resolves the
// member's OpenID subject, and stores the credential record. Any failure is
// logged and reported as false.
func (c *LinkedInConnector) HandleCallback(ctx context.Context, code string) bool {
	tok, err := c.OAuth.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("linkedin token exchange failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"/v2/userinfo", nil)
	if err != nil {
		log.Error().Err(err).Msg("linkedin userinfo request failed")
		return false
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("linkedin userinfo request failed")
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("linkedin userinfo failed")
		return false
	}

	var user struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		log.Error().Err(err).Msg("linkedin userinfo decode failed")
		return false
	}

	record := &domain.LinkedInToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		UserID:       user.Sub,
	}
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry
		record.ExpiresAt = &exp
	}
	if err := c.Tokens.SaveLinkedIn(record); err != nil {
		log.Error().Err(err).Msg("linkedin token save failed")
		return false
	}
	return true
}

// ugcShareText is the commentary body of a UGC share.
type ugcShareText struct {
	Text string `json:"text"`
}

// ugcShareContent is the com.linkedin.ugc.ShareContent payload.
type ugcShareContent struct {
	ShareCommentary    ugcShareText `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
}

// ugcPostRequest is the UGC post creation payload.
type ugcPostRequest struct {
	Author          string                     `json:"author"`
	LifecycleState  string                     `json:"lifecycleState"`
	SpecificContent map[string]ugcShareContent `json:"specificContent"`
	Visibility      map[string]string          `json:"visibility"`
}

// Post implements Connector. Exactly one ugcPosts call; a non-2xx status is
// mapped to a failure result carrying the status code.
func (c *LinkedInConnector) Post(ctx context.Context, content string) PostResult {
	tokens, err := c.Tokens.Tokens()
	if err != nil || tokens.LinkedIn == nil || tokens.LinkedIn.AccessToken == "" || tokens.LinkedIn.UserID == "" {
		return PostResult{Error: "not authenticated with LinkedIn"}
	}

	payload := ugcPostRequest{
		Author:         "urn:li:person:" + tokens.LinkedIn.UserID,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]ugcShareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    ugcShareText{Text: content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return PostResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBase+"/v2/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return PostResult{Error: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+tokens.LinkedIn.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("linkedin post failed")
		return PostResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Msg("linkedin post rejected")
		return PostResult{Error: fmt.Sprintf("LinkedIn API error: %d", resp.StatusCode)}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Error().Err(err).Msg("linkedin post decode failed")
		return PostResult{Error: err.Error()}
	}

	return PostResult{
		Success: true,
		PostID:  created.ID,
		URL:     fmt.Sprintf(linkedinPostURLFmt, created.ID),
	}
}

// Disconnect implements Connector.
func (c *LinkedInConnector) Disconnect() error {
	return c.Tokens.Delete("linkedin")
}
