// AI HTTP handlers.
//
// This file exposes the two LLM-backed endpoints:
//   - POST /ai/generate   (draft a post from a prompt)
//   - POST /ai/summarize  (condense a post into a short summary)
//
// Both endpoints refuse to run when no provider API key is configured; the
// check happens before any network call.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/socialdraft/go-social-backend/internal/services"
)

//
// DTOs
//

// GenerateRequest is the JSON payload for drafting a post.
type GenerateRequest struct {
	// Prompt describes what the post should say.
	Prompt string `json:"prompt" binding:"required" example:"Announce our spring sale"`
	// Platforms optionally targets specific platforms for tone guidance.
	Platforms []string `json:"platforms,omitempty" example:"linkedin"`
	// IncludeContext mixes stored business context into the prompt.
	// Omitted means true.
	IncludeContext *bool `json:"includeContext,omitempty"`
	// IncludeHistory mixes recent post summaries into the prompt.
	// Omitted means true.
	IncludeHistory *bool `json:"includeHistory,omitempty"`
}

// GenerateResponse carries the generated draft.
type GenerateResponse struct {
	Content string `json:"content"`
}

// SummarizeRequest is the JSON payload for summarizing a post.
type SummarizeRequest struct {
	Content  string `json:"content" binding:"required"`
	Platform string `json:"platform,omitempty" example:"linkedin"`
}

// SummarizeResponse carries the summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

//
// Handlers
//

// Generate godoc
// @ID          generatePost
// @Summary     Generate a post draft
// @Description Drafts a social media post from a prompt, optionally mixing in business context and recent post history.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.GenerateRequest  true  "Generate payload"
// @Success     200  {object}  handlers.GenerateResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Not configured / generation failed"
// @Router      /ai/generate [post]
func (h *Handlers) Generate(c *gin.Context) {
	if !h.llmConfigured {
		fail(c, http.StatusInternalServerError, ErrCodeNotConfigured, "LLM provider is not configured")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "prompt must not be empty")
		return
	}

	content, err := h.generator.Generate(c.Request.Context(), req.Prompt, services.GenerateOptions{
		Platforms:      req.Platforms,
		IncludeContext: boolOrTrue(req.IncludeContext),
		IncludeHistory: boolOrTrue(req.IncludeHistory),
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyPrompt) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "prompt must not be empty")
			return
		}
		// Provider faults stay generic toward the client.
		fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, "failed to generate post")
		return
	}
	ok(c, http.StatusOK, GenerateResponse{Content: content})
}

// Summarize godoc
// @ID          summarizePost
// @Summary     Summarize a post
// @Description Condenses post content into a short summary suitable for the history store.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SummarizeRequest  true  "Summarize payload"
// @Success     200  {object}  handlers.SummarizeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Not configured / summarization failed"
// @Router      /ai/summarize [post]
func (h *Handlers) Summarize(c *gin.Context) {
	if !h.llmConfigured {
		fail(c, http.StatusInternalServerError, ErrCodeNotConfigured, "LLM provider is not configured")
		return
	}

	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	summary, err := h.summarize.Summarize(c.Request.Context(), req.Content, req.Platform)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content must not be empty")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSummarizeFailed, "failed to summarize post")
		return
	}
	ok(c, http.StatusOK, SummarizeResponse{Summary: summary})
}

// boolOrTrue resolves an optional request flag; an omitted flag means true.
func boolOrTrue(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
