// Package services – SummarizationService
//
// This file implements the second, independent completion call that
// compresses a published post into a short memory entry for future
// generation context. Failure here is recoverable by design: callers fall
// back to truncating the original content instead of failing the publish.
package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialdraft/go-social-backend/internal/llm"
	"github.com/socialdraft/go-social-backend/internal/utils"
)

// Sampling parameters for the summarization call.
const (
	summarizeTemperature = 0.3
	summarizeMaxTokens   = 100

	// summaryFallbackChars is the truncation budget used when the provider
	// returns nothing.
	summaryFallbackChars = 100
)

const summarizerSystemPrompt = `You are a content summarizer. Create a very brief summary (max 50 words) of a social media post that captures the key topic/theme. This summary will be used to give context to future post generation to avoid repetition.

Output only the summary, no quotes or prefixes.`

// SummarizationService condenses published posts for the history store.
type SummarizationService struct {
	LLM Completer
}

// NewSummarizationService constructs a SummarizationService.
func NewSummarizationService(c Completer) *SummarizationService {
	return &SummarizationService{LLM: c}
}

// Summarize issues one low-temperature completion call and returns the
// trimmed summary. An empty provider reply falls back to truncating the
// original content; transport/provider errors are returned for the caller
// to handle (callers treat them as recoverable).
func (s *SummarizationService) Summarize(ctx context.Context, content, platform string) (string, error) {
	tr := otel.Tracer("services/SummarizationService")
	ctx, span := tr.Start(ctx, "Summarize",
		trace.WithAttributes(attribute.String("post.platform", platform)),
	)
	defer span.End()

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	out, err := s.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: summarizerSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("<platform>%s</platform>\n<post>\n%s\n</post>", platform, content)},
	}, summarizeTemperature, summarizeMaxTokens)
	if err != nil {
		return "", err
	}

	if summary := strings.TrimSpace(out); summary != "" {
		return summary, nil
	}
	return utils.Truncate(content, summaryFallbackChars), nil
}
