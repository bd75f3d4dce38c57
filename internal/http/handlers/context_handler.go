// Business context HTTP handlers.
//
// This file exposes REST endpoints for business context entries:
//   - GET    /context          (list)
//   - POST   /context          (create)
//   - GET    /context/{id}     (read)
//   - PUT    /context/{id}     (update)
//   - DELETE /context/{id}     (delete)
//
// Handlers are transport-thin: they validate input, call the flat-file stores
// and application services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/socialdraft/go-social-backend/internal/domain"
	"github.com/socialdraft/go-social-backend/internal/platform"
	"github.com/socialdraft/go-social-backend/internal/services"
	"github.com/socialdraft/go-social-backend/internal/store"
)

//
// Store and service contracts
//

// ContextStore defines the business context persistence operations consumed
// by HTTP handlers. *store.ContextStore satisfies it.
type ContextStore interface {
	List() ([]domain.ContextEntry, error)
	Get(id string) (*domain.ContextEntry, error)
	Create(typ domain.ContextType, title, content string) (*domain.ContextEntry, error)
	Update(id string, upd store.ContextUpdate) (*domain.ContextEntry, error)
	Delete(id string) error
}

// HistoryStore defines the post history persistence operations consumed by
// HTTP handlers. *store.HistoryStore satisfies it.
type HistoryStore interface {
	List() ([]domain.PostHistoryEntry, error)
	Get(id string) (*domain.PostHistoryEntry, error)
	Create(entry domain.PostHistoryEntry) (*domain.PostHistoryEntry, error)
	Update(id string, upd store.HistoryUpdate) (*domain.PostHistoryEntry, error)
	Delete(id string) error
}

// GenerationService produces post drafts from a prompt plus optional context
// and history sections.
type GenerationService interface {
	Generate(ctx context.Context, prompt string, opts services.GenerateOptions) (string, error)
}

// SummarizationService condenses post content into a short summary.
type SummarizationService interface {
	Summarize(ctx context.Context, content, platform string) (string, error)
}

// PublishService runs the full publish flow for one platform.
type PublishService interface {
	Publish(ctx context.Context, name, content string) (platform.PostResult, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for context, history, AI operations, and
// platform connections. It depends on abstract contracts to keep transport
// concerns separate from business logic.
type Handlers struct {
	contexts  ContextStore
	history   HistoryStore
	registry  *platform.Registry
	generator GenerationService
	summarize SummarizationService
	publisher PublishService

	// appBaseURL is where OAuth callbacks redirect the browser back to.
	appBaseURL string
	// llmConfigured gates the AI endpoints; false means no provider API key
	// was supplied, so generation must fail before any network call.
	llmConfigured bool
}

// Options carries the dependencies and settings for New.
type Options struct {
	Contexts      ContextStore
	History       HistoryStore
	Registry      *platform.Registry
	Generator     GenerationService
	Summarizer    SummarizationService
	Publisher     PublishService
	AppBaseURL    string
	LLMConfigured bool
}

// New constructs and returns a Handlers instance bound to the given
// dependencies.
func New(o Options) *Handlers {
	return &Handlers{
		contexts:      o.Contexts,
		history:       o.History,
		registry:      o.Registry,
		generator:     o.Generator,
		summarize:     o.Summarizer,
		publisher:     o.Publisher,
		appBaseURL:    strings.TrimRight(o.AppBaseURL, "/"),
		llmConfigured: o.LLMConfigured,
	}
}

//
// DTOs
//

// CreateContextRequest is the JSON payload for creating a context entry.
type CreateContextRequest struct {
	// Type categorizes the entry: business, event, date, or general.
	Type string `json:"type" binding:"required" example:"business"`
	// Title is a short label for the entry.
	Title string `json:"title" binding:"required,min=1,max=255" example:"Company mission"`
	// Content is the entry body fed into post generation.
	Content string `json:"content" binding:"required" example:"We build carbon-neutral widgets."`
}

// UpdateContextRequest is the JSON payload for updating a context entry.
// Absent fields are left unchanged.
type UpdateContextRequest struct {
	Type    *string `json:"type,omitempty" example:"event"`
	Title   *string `json:"title,omitempty" example:"Spring launch"`
	Content *string `json:"content,omitempty"`
}

//
// Handlers
//

// ListContext godoc
// @ID          listContext
// @Summary     List context entries
// @Description Returns all business context entries in insertion order.
// @Tags        Context
// @Produce     json
// @Success     200  {array}   domain.ContextEntry
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /context [get]
func (h *Handlers) ListContext(c *gin.Context) {
	entries, err := h.contexts.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if entries == nil {
		entries = []domain.ContextEntry{}
	}
	ok(c, http.StatusOK, entries)
}

// CreateContext godoc
// @ID          createContext
// @Summary     Create a context entry
// @Description Creates a business context entry and returns it.
// @Tags        Context
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateContextRequest  true  "Create context payload"
// @Success     201  {object}  domain.ContextEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /context [post]
func (h *Handlers) CreateContext(c *gin.Context) {
	var req CreateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	typ := domain.ContextType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !domain.ValidContextType(typ) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type must be one of: business, event, date, general")
		return
	}

	entry, err := h.contexts.Create(typ, strings.TrimSpace(req.Title), req.Content)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, entry)
}

// GetContext godoc
// @ID          getContext
// @Summary     Get a context entry
// @Tags        Context
// @Produce     json
// @Param       id  path  string  true  "Context entry ID"
// @Success     200  {object}  domain.ContextEntry
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /context/{id} [get]
func (h *Handlers) GetContext(c *gin.Context) {
	entry, err := h.contexts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "context entry not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, entry)
}

// UpdateContext godoc
// @ID          updateContext
// @Summary     Update a context entry
// @Description Applies a partial update to a context entry; absent fields are kept.
// @Tags        Context
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Context entry ID"
// @Param       body  body  handlers.UpdateContextRequest  true  "Update payload"
// @Success     200  {object}  domain.ContextEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /context/{id} [put]
func (h *Handlers) UpdateContext(c *gin.Context) {
	var req UpdateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	upd := store.ContextUpdate{Title: req.Title, Content: req.Content}
	if req.Type != nil {
		typ := domain.ContextType(strings.ToLower(strings.TrimSpace(*req.Type)))
		if !domain.ValidContextType(typ) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type must be one of: business, event, date, general")
			return
		}
		upd.Type = &typ
	}

	entry, err := h.contexts.Update(c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "context entry not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, entry)
}

// DeleteContext godoc
// @ID          deleteContext
// @Summary     Delete a context entry
// @Tags        Context
// @Param       id  path  string  true  "Context entry ID"
// @Success     204  "No content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /context/{id} [delete]
func (h *Handlers) DeleteContext(c *gin.Context) {
	if err := h.contexts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "context entry not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
