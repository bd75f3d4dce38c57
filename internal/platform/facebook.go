// Package platform – Facebook connector.
//
// Authorization-code flow against the Graph API with one extra step: after
// exchanging the code for a user token, the callback lists the pages the
// user manages and adopts the first one, storing its id and page-scoped
// token. Publishing always happens as that page, never as the user. A user
// with zero manageable pages cannot complete the connection.
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

	"github.com/socialdraft/go-social-backend/internal/domain"
)

const (
	facebookState      = "facebook_auth"
	facebookGraphBase  = "https://graph.facebook.com/v18.0"
	facebookAuthURL    = "https://www.facebook.com/v18.0/dialog/oauth"
	facebookTokenURL   = "https://graph.facebook.com/v18.0/oauth/access_token"
	facebookPostURLFmt = "https://www.facebook.com/%s"

	// Graph user tokens typically last 60 days; applied when the exchange
	// response carries no expires_in.
	facebookDefaultExpiry = 5184000 * time.Second
)

// FacebookConnector publishes page posts via the Graph API.
type FacebookConnector struct {
	OAuth  *oauth2.Config
	Tokens TokenStore
	HTTP   *http.Client
	// GraphBase is the versioned Graph API origin; tests point it at a
	// local server.
	GraphBase string
}

// NewFacebook builds the Facebook connector for the given app credentials
// and redirect URI.
func NewFacebook(appID, appSecret, redirectURL string, tokens TokenStore) *FacebookConnector {
	return &FacebookConnector{
		OAuth: &oauth2.Config{
			ClientID:     appID,
			ClientSecret: appSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"pages_manage_posts", "pages_read_engagement", "pages_show_list"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  facebookAuthURL,
				TokenURL: facebookTokenURL,
			},
		},
		Tokens:    tokens,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		GraphBase: facebookGraphBase,
	}
}

// Config implements Connector.
func (c *FacebookConnector) Config() Config {
	return Config{Name: "facebook", DisplayName: "Facebook", MaxLength: 63206}
}

// IsAuthenticated implements Connector. Both the user token and the
// page-scoped token are required for publishing.
func (c *FacebookConnector) IsAuthenticated() bool {
	tokens, err := c.Tokens.Tokens()
	if err != nil || tokens.Facebook == nil {
		return false
	}
	fb := tokens.Facebook
	if fb.AccessToken == "" || fb.PageAccessToken == "" {
		return false
	}
	if fb.ExpiresAt != nil && !fb.ExpiresAt.After(time.Now()) {
		return false
	}
	return true
}

// AuthURL implements Connector.
func (c *FacebookConnector) AuthURL() string {
	return c.OAuth.AuthCodeURL(facebookState)
}

// graphPage is one entry of the /me/accounts page list.
type graphPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// HandleCallback implements Connector. After the token exchange it fetches
// the managed pages and stores the first page's id and token; zero pages is
// a failure and nothing is written.
func (c *FacebookConnector) HandleCallback(ctx context.Context, code string) bool {
	tok, err := c.OAuth.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("facebook token exchange failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.GraphBase+"/me/accounts?access_token="+tok.AccessToken, nil)
	if err != nil {
		log.Error().Err(err).Msg("facebook pages request failed")
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("facebook pages request failed")
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("facebook pages fetch failed")
		return false
	}

	var pages struct {
		Data []graphPage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pages); err != nil {
		log.Error().Err(err).Msg("facebook pages decode failed")
		return false
	}
	if len(pages.Data) == 0 {
		log.Error().Msg("no facebook pages found")
		return false
	}
	// The first manageable page is adopted; there is no selection step.
	page := pages.Data[0]

	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(facebookDefaultExpiry)
	}
	record := &domain.FacebookToken{
		AccessToken:     tok.AccessToken,
		PageID:          page.ID,
		PageAccessToken: page.AccessToken,
		ExpiresAt:       &expiry,
	}
	if err := c.Tokens.SaveFacebook(record); err != nil {
		log.Error().Err(err).Msg("facebook token save failed")
		return false
	}
	return true
}

// Post implements Connector. Exactly one page feed call; a non-2xx status is
// mapped to a failure result carrying the status code.
func (c *FacebookConnector) Post(ctx context.Context, content string) PostResult {
	tokens, err := c.Tokens.Tokens()
	if err != nil || tokens.Facebook == nil || tokens.Facebook.PageAccessToken == "" || tokens.Facebook.PageID == "" {
		return PostResult{Error: "not authenticated with Facebook"}
	}
	fb := tokens.Facebook

	body, err := json.Marshal(map[string]string{
		"message":      content,
		"access_token": fb.PageAccessToken,
	})
	if err != nil {
		return PostResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.GraphBase+"/"+fb.PageID+"/feed", bytes.NewReader(body))
	if err != nil {
		return PostResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("facebook post failed")
		return PostResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Msg("facebook post rejected")
		return PostResult{Error: fmt.Sprintf("Facebook API error: %d", resp.StatusCode)}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Error().Err(err).Msg("facebook post decode failed")
		return PostResult{Error: err.Error()}
	}

	return PostResult{
		Success: true,
		PostID:  created.ID,
		URL:     fmt.Sprintf(facebookPostURLFmt, created.ID),
	}
}

// Disconnect implements Connector.
func (c *FacebookConnector) Disconnect() error {
	return c.Tokens.Delete("facebook")
}
