// Platform connection HTTP handlers.
//
// This file exposes the OAuth connection lifecycle and publishing endpoints:
//   - GET  /platforms/status               (connection status per platform)
//   - GET  /platforms/{name}/auth          (302 to the provider consent page)
//   - GET  /platforms/{name}/callback      (OAuth redirect target; 302 back to the app)
//   - POST /platforms/{name}/post          (publish content)
//   - POST /platforms/{name}/disconnect    (forget stored credentials)
//
// The callback endpoint is browser-facing: it never returns JSON errors, only
// redirects back to the app with a success or error query parameter.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialdraft/go-social-backend/internal/http/middleware"
	"github.com/socialdraft/go-social-backend/internal/services"
)

//
// DTOs
//

// PostRequest is the JSON payload for publishing content to a platform.
type PostRequest struct {
	Content string `json:"content" binding:"required"`
}

// PlatformStatus describes one platform's connection state.
type PlatformStatus struct {
	Name        string `json:"name" example:"linkedin"`
	DisplayName string `json:"displayName" example:"LinkedIn"`
	Connected   bool   `json:"connected"`
	MaxLength   int    `json:"maxLength" example:"3000"`
}

// DisconnectResponse confirms a disconnect.
type DisconnectResponse struct {
	Success bool `json:"success"`
}

//
// Handlers
//

// Status godoc
// @ID          platformStatus
// @Summary     Platform connection status
// @Description Returns each registered platform with its current connection state.
// @Tags        Platforms
// @Produce     json
// @Success     200  {array}  handlers.PlatformStatus
// @Router      /platforms/status [get]
func (h *Handlers) Status(c *gin.Context) {
	conns := h.registry.All()
	statuses := make([]PlatformStatus, 0, len(conns))
	for _, conn := range conns {
		cfg := conn.Config()
		statuses = append(statuses, PlatformStatus{
			Name:        cfg.Name,
			DisplayName: cfg.DisplayName,
			Connected:   conn.IsAuthenticated(),
			MaxLength:   cfg.MaxLength,
		})
	}
	ok(c, http.StatusOK, statuses)
}

// Auth godoc
// @ID          platformAuth
// @Summary     Start the OAuth flow
// @Description Redirects the browser to the platform's consent page.
// @Tags        Platforms
// @Param       platform  path  string  true  "Platform name"  example(linkedin)
// @Success     302  "Redirect to provider"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown platform"
// @Router      /platforms/{platform}/auth [get]
func (h *Handlers) Auth(c *gin.Context) {
	name := c.Param("platform")
	conn, found := h.registry.Get(name)
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "platform not found")
		return
	}
	c.Redirect(http.StatusFound, conn.AuthURL())
}

// Callback godoc
// @ID          platformCallback
// @Summary     OAuth callback
// @Description Exchanges the authorization code and redirects back to the app with a success or error query parameter.
// @Tags        Platforms
// @Param       platform  path   string  true   "Platform name"
// @Param       code      query  string  false  "Authorization code"
// @Param       error     query  string  false  "Provider error"
// @Success     302  "Redirect back to the app"
// @Router      /platforms/{platform}/callback [get]
func (h *Handlers) Callback(c *gin.Context) {
	name := c.Param("platform")

	conn, found := h.registry.Get(name)
	if !found {
		h.redirectBack(c, "error", "platform_not_found")
		return
	}
	if c.Query("error") != "" {
		middleware.LoggerFrom(c).Warn().
			Str("platform", name).
			Str("oauth_error", c.Query("error")).
			Msg("oauth consent denied")
		h.redirectBack(c, "error", name+"_auth_denied")
		return
	}
	code := c.Query("code")
	if code == "" {
		h.redirectBack(c, "error", name+"_no_code")
		return
	}

	if !conn.HandleCallback(c.Request.Context(), code) {
		h.redirectBack(c, "error", name+"_auth_failed")
		return
	}
	h.redirectBack(c, "success", name+"_connected")
}

// Post godoc
// @ID          platformPost
// @Summary     Publish a post
// @Description Publishes content through the platform connector and records the attempt in history.
// @Tags        Platforms
// @Accept      json
// @Produce     json
// @Param       platform  path  string  true  "Platform name"
// @Param       body      body  handlers.PostRequest  true  "Post payload"
// @Success     200  {object}  platform.PostResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown platform"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /platforms/{platform}/post [post]
func (h *Handlers) Post(c *gin.Context) {
	name := c.Param("platform")

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	result, err := h.publisher.Publish(c.Request.Context(), name, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content must not be empty")
		case errors.Is(err, services.ErrPlatformNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "platform not found")
		case errors.Is(err, services.ErrNotAuthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "platform not authenticated")
		default:
			fail(c, http.StatusInternalServerError, ErrCodePostFailed, err.Error())
		}
		return
	}

	middleware.ObservePublish(name, result.Success)
	ok(c, http.StatusOK, result)
}

// Disconnect godoc
// @ID          platformDisconnect
// @Summary     Disconnect a platform
// @Description Deletes the stored credentials for the platform.
// @Tags        Platforms
// @Produce     json
// @Param       platform  path  string  true  "Platform name"
// @Success     200  {object}  handlers.DisconnectResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown platform"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /platforms/{platform}/disconnect [post]
func (h *Handlers) Disconnect(c *gin.Context) {
	name := c.Param("platform")
	conn, found := h.registry.Get(name)
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "platform not found")
		return
	}
	if err := conn.Disconnect(); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, DisconnectResponse{Success: true})
}

// redirectBack sends the browser to the app base URL with one query
// parameter describing the callback outcome.
func (h *Handlers) redirectBack(c *gin.Context, key, value string) {
	c.Redirect(http.StatusFound, h.appBaseURL+"/?"+key+"="+value)
}
