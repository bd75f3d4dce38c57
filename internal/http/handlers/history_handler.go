// Post history HTTP handlers.
//
// This file exposes REST endpoints for post history records:
//   - GET    /history          (list, newest first)
//   - POST   /history          (create a manual record)
//   - GET    /history/{id}     (read)
//   - PUT    /history/{id}     (update)
//   - DELETE /history/{id}     (delete)
//
// Manual records get their abbreviated content from the summarization
// service; a summarization failure falls back to truncating the content and
// never blocks the record.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialdraft/go-social-backend/internal/domain"
	"github.com/socialdraft/go-social-backend/internal/http/middleware"
	"github.com/socialdraft/go-social-backend/internal/store"
	"github.com/socialdraft/go-social-backend/internal/utils"
)

//
// DTOs
//

// CreateHistoryRequest is the JSON payload for recording a post manually,
// e.g. one published outside this tool.
type CreateHistoryRequest struct {
	// Platform names where the post went out (e.g. "linkedin").
	Platform string `json:"platform" binding:"required" example:"linkedin"`
	// Content is the full post text.
	Content string `json:"content" binding:"required"`
	// Status defaults to "published" when empty.
	Status string `json:"status,omitempty" example:"published"`
}

// UpdateHistoryRequest is the JSON payload for updating a history record.
// Absent fields are left unchanged.
type UpdateHistoryRequest struct {
	Platform           *string `json:"platform,omitempty"`
	AbbreviatedContent *string `json:"abbreviatedContent,omitempty"`
	FullContent        *string `json:"fullContent,omitempty"`
	Status             *string `json:"status,omitempty"`
}

//
// Handlers
//

// ListHistory godoc
// @ID          listHistory
// @Summary     List post history
// @Description Returns all post history records, newest first.
// @Tags        History
// @Produce     json
// @Success     200  {array}   domain.PostHistoryEntry
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history [get]
func (h *Handlers) ListHistory(c *gin.Context) {
	entries, err := h.history.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if entries == nil {
		entries = []domain.PostHistoryEntry{}
	}
	ok(c, http.StatusOK, entries)
}

// CreateHistory godoc
// @ID          createHistory
// @Summary     Record a post manually
// @Description Creates a history record for a post published outside this tool.
// @Tags        History
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateHistoryRequest  true  "Create history payload"
// @Success     201  {object}  domain.PostHistoryEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history [post]
func (h *Handlers) CreateHistory(c *gin.Context) {
	var req CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	status := domain.PostStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status == "" {
		status = domain.StatusPublished
	}
	if !domain.ValidPostStatus(status) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be one of: published, draft, failed")
		return
	}

	entry, err := h.history.Create(domain.PostHistoryEntry{
		Platform:           strings.ToLower(strings.TrimSpace(req.Platform)),
		AbbreviatedContent: h.abbreviate(c, req.Content, req.Platform),
		FullContent:        req.Content,
		PostedAt:           time.Now().UTC(),
		Status:             status,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, entry)
}

// GetHistory godoc
// @ID          getHistory
// @Summary     Get a history record
// @Tags        History
// @Produce     json
// @Param       id  path  string  true  "History record ID"
// @Success     200  {object}  domain.PostHistoryEntry
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history/{id} [get]
func (h *Handlers) GetHistory(c *gin.Context) {
	entry, err := h.history.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "history record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, entry)
}

// UpdateHistory godoc
// @ID          updateHistory
// @Summary     Update a history record
// @Description Applies a partial update to a history record; absent fields are kept.
// @Tags        History
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "History record ID"
// @Param       body  body  handlers.UpdateHistoryRequest  true  "Update payload"
// @Success     200  {object}  domain.PostHistoryEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history/{id} [put]
func (h *Handlers) UpdateHistory(c *gin.Context) {
	var req UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	upd := store.HistoryUpdate{
		Platform:           req.Platform,
		AbbreviatedContent: req.AbbreviatedContent,
		FullContent:        req.FullContent,
	}
	if req.Status != nil {
		status := domain.PostStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !domain.ValidPostStatus(status) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be one of: published, draft, failed")
			return
		}
		upd.Status = &status
	}

	entry, err := h.history.Update(c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "history record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, entry)
}

// DeleteHistory godoc
// @ID          deleteHistory
// @Summary     Delete a history record
// @Tags        History
// @Param       id  path  string  true  "History record ID"
// @Success     204  "No content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history/{id} [delete]
func (h *Handlers) DeleteHistory(c *gin.Context) {
	if err := h.history.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "history record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}

// abbreviate produces the short summary stored with a manual history record.
// Summarization errors are logged and recovered by abbreviating the content
// to the display length with an ellipsis.
func (h *Handlers) abbreviate(c *gin.Context, content, platform string) string {
	if h.summarize != nil && h.llmConfigured {
		summary, err := h.summarize.Summarize(c.Request.Context(), content, platform)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("summarization failed, abbreviating content")
		}
	}
	return utils.Abbreviate(content, 100)
}
