// Package services – PublishService
//
// This file coordinates the publish flow: registry lookup, authentication
// check, the single provider publish call, and the history record that every
// attempt leaves behind. The summary used for the history entry comes from
// the SummarizationService with a truncation fallback, so a summarization
// failure never blocks a publish.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialdraft/go-social-backend/internal/domain"
	"github.com/socialdraft/go-social-backend/internal/platform"
	"github.com/socialdraft/go-social-backend/internal/utils"
)

// HistoryWriter records publish attempts. The flat-file history store
// satisfies it.
type HistoryWriter interface {
	Create(entry domain.PostHistoryEntry) (*domain.PostHistoryEntry, error)
}

// Summarizer condenses content for the history record.
// *SummarizationService satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, content, platform string) (string, error)
}

// PublishService publishes content through a platform connector and records
// the attempt.
type PublishService struct {
	Registry   *platform.Registry
	History    HistoryWriter
	Summarizer Summarizer
}

// NewPublishService constructs a PublishService.
func NewPublishService(reg *platform.Registry, history HistoryWriter, summarizer Summarizer) *PublishService {
	return &PublishService{Registry: reg, History: history, Summarizer: summarizer}
}

// Publish runs the publish flow for the named platform. It returns
// ErrPlatformNotFound for unknown names and ErrNotAuthenticated when the
// connector holds no valid credentials; otherwise the connector's PostResult
// is returned and a history entry (published or failed) is recorded.
func (s *PublishService) Publish(ctx context.Context, name, content string) (platform.PostResult, error) {
	tr := otel.Tracer("services/PublishService")
	ctx, span := tr.Start(ctx, "Publish",
		trace.WithAttributes(attribute.String("post.platform", name)),
	)
	defer span.End()

	if content == "" {
		return platform.PostResult{}, ErrEmptyContent
	}

	conn, ok := s.Registry.Get(name)
	if !ok {
		return platform.PostResult{}, ErrPlatformNotFound
	}
	if !conn.IsAuthenticated() {
		return platform.PostResult{}, ErrNotAuthenticated
	}

	result := conn.Post(ctx, content)

	status := domain.StatusPublished
	if !result.Success {
		status = domain.StatusFailed
	}
	entry := domain.PostHistoryEntry{
		Platform:           name,
		AbbreviatedContent: s.summarize(ctx, content, name),
		FullContent:        content,
		PostedAt:           time.Now().UTC(),
		Status:             status,
	}
	if _, err := s.History.Create(entry); err != nil {
		// The post already went out (or definitively failed); a history
		// write error must not turn that outcome into a publish error.
		log.Error().Err(err).Str("platform", name).Msg("history record failed")
	}

	return result, nil
}

// summarize asks the SummarizationService for a short summary and falls back
// to a plain truncation of the content when the call fails or yields
// nothing.
func (s *PublishService) summarize(ctx context.Context, content, name string) string {
	if s.Summarizer != nil {
		summary, err := s.Summarizer.Summarize(ctx, content, name)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil && !errors.Is(err, ErrEmptyContent) {
			log.Warn().Err(err).Str("platform", name).Msg("summarization failed, falling back to truncation")
		}
	}
	return utils.Truncate(content, 100)
}
