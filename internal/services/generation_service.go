// Package services – GenerationService
//
// This file implements the content generation pipeline: it composes a system
// prompt from base writing guidelines plus per-platform guidance, assembles a
// user message from optional business context and recent post history, and
// issues a single chat completion call. Provider faults are not caught here;
// the handler layer turns them into a generic user-facing error.
//
// Observability: Generate is OpenTelemetry-instrumented; spans record the
// target platforms and which context sections were included.
package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialdraft/go-social-backend/internal/domain"
	"github.com/socialdraft/go-social-backend/internal/llm"
)

// Sampling parameters for the generation call.
const (
	generateTemperature = 0.7
	generateMaxTokens   = 1000

	// recentHistoryLimit caps how many prior posts are fed back into the
	// prompt; the history store is most-recent-first, so this is a prefix.
	recentHistoryLimit = 10
)

const baseSystemPrompt = `You are a professional social media content creator. Create engaging, authentic posts that resonate with the target audience.

Guidelines:
- Write in a conversational, professional tone
- Keep posts concise and impactful
- Include relevant hashtags when appropriate
- Avoid overly promotional language
- Make content shareable and engaging
- IMPORTANT: When including URLs, write them as plain text (e.g., "voxelquote.com" or "https://voxelquote.com"). DO NOT use markdown link format like [text](url).`

const linkedinGuidelines = `LinkedIn-specific guidelines:
- Professional and thought-leadership focused
- Longer form content (1300-3000 characters works well)
- Use line breaks for readability
- Include 3-5 relevant hashtags at the end
- Encourage professional discussion and engagement
- URLs should be plain text (not markdown links)`

const facebookGuidelines = `Facebook-specific guidelines:
- Conversational and community-focused
- Shorter, more casual content (40-80 words is optimal)
- Use emojis sparingly but effectively
- Ask questions to encourage comments
- Include 1-3 relevant hashtags
- URLs should be plain text (not markdown links)`

// platformGuidelines maps recognized platform names to their stylistic
// guidance block. Unrecognized names contribute nothing.
var platformGuidelines = map[string]string{
	"linkedin": linkedinGuidelines,
	"facebook": facebookGuidelines,
}

// ContextReader supplies the full set of business context entries.
type ContextReader interface {
	List() ([]domain.ContextEntry, error)
}

// HistoryReader supplies post history entries, newest first.
type HistoryReader interface {
	List() ([]domain.PostHistoryEntry, error)
}

// Completer issues one chat completion call. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, temperature float64, maxTokens int) (string, error)
}

// GenerateOptions selects what surrounds the raw prompt.
type GenerateOptions struct {
	// Platforms names the publish targets; per-platform guidance is appended
	// in list order for each recognized name.
	Platforms []string
	// IncludeContext pulls in all business context entries.
	IncludeContext bool
	// IncludeHistory pulls in the most recent post summaries.
	IncludeHistory bool
}

// GenerationService builds and issues LLM requests for new post drafts.
type GenerationService struct {
	LLM     Completer
	Context ContextReader
	History HistoryReader
}

// NewGenerationService constructs a GenerationService.
func NewGenerationService(c Completer, ctxStore ContextReader, histStore HistoryReader) *GenerationService {
	return &GenerationService{LLM: c, Context: ctxStore, History: histStore}
}

// Generate composes the system and user messages per opts and issues one
// completion call, returning the model's draft (possibly empty). Provider
// errors propagate to the caller.
func (s *GenerationService) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.StringSlice("post.platforms", opts.Platforms),
			attribute.Bool("post.include_context", opts.IncludeContext),
			attribute.Bool("post.include_history", opts.IncludeHistory),
		),
	)
	defer span.End()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	userMessage, err := s.buildUserMessage(prompt, opts)
	if err != nil {
		return "", err
	}

	return s.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: buildSystemPrompt(opts.Platforms)},
		{Role: llm.RoleUser, Content: userMessage},
	}, generateTemperature, generateMaxTokens)
}

// buildSystemPrompt appends the target-platform line and each recognized
// platform's guidance block, in input order, to the base guidelines.
func buildSystemPrompt(platforms []string) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)

	if len(platforms) > 0 {
		fmt.Fprintf(&b, "\n\nTarget platforms: %s. Adapt the tone and format accordingly.", strings.Join(platforms, ", "))
		for _, p := range platforms {
			if guide, ok := platformGuidelines[p]; ok {
				b.WriteString("\n\n")
				b.WriteString(guide)
			}
		}
	}
	return b.String()
}

// buildUserMessage assembles the context and history sections around the
// prompt. When both sections are empty the prompt is passed through
// verbatim.
func (s *GenerationService) buildUserMessage(prompt string, opts GenerateOptions) (string, error) {
	var section strings.Builder

	if opts.IncludeContext {
		entries, err := s.Context.List()
		if err != nil {
			return "", err
		}
		if len(entries) > 0 {
			section.WriteString("\n\n<business_context>\n")
			for _, e := range entries {
				fmt.Fprintf(&section, "<%s title=%q>\n%s\n</%s>\n", e.Type, e.Title, e.Content, e.Type)
			}
			section.WriteString("</business_context>")
		}
	}

	if opts.IncludeHistory {
		history, err := s.History.List()
		if err != nil {
			return "", err
		}
		if len(history) > recentHistoryLimit {
			history = history[:recentHistoryLimit]
		}
		if len(history) > 0 {
			section.WriteString("\n\n<recent_posts>\n")
			for _, p := range history {
				fmt.Fprintf(&section, "<post platform=%q date=%q>\n%s\n</post>\n",
					p.Platform, p.PostedAt.Format("2006-01-02T15:04:05Z07:00"), p.AbbreviatedContent)
			}
			section.WriteString("</recent_posts>\n\nAvoid repeating similar content to recent posts. Maintain variety and freshness.")
		}
	}

	if section.Len() == 0 {
		return prompt, nil
	}
	return fmt.Sprintf("%s\n\n<request>\n%s\n</request>", section.String(), prompt), nil
}
