package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/socialdraft/go-social-backend/internal/domain"
	"github.com/socialdraft/go-social-backend/internal/platform"
)

// ----- Fakes -----

type stubConnector struct {
	name          string
	authenticated bool

	// capture args
	postedContent string
	postCalls     int

	result platform.PostResult
}

func (s *stubConnector) Config() platform.Config {
	return platform.Config{Name: s.name, DisplayName: s.name, MaxLength: 3000}
}
func (s *stubConnector) IsAuthenticated() bool { return s.authenticated }
func (s *stubConnector) AuthURL() string       { return "https://auth.example/" + s.name }
func (s *stubConnector) HandleCallback(context.Context, string) bool { return true }
func (s *stubConnector) Post(_ context.Context, content string) platform.PostResult {
	s.postCalls++
	s.postedContent = content
	return s.result
}
func (s *stubConnector) Disconnect() error { return nil }

type fakeHistoryWriter struct {
	created []domain.PostHistoryEntry
	err     error
}

func (f *fakeHistoryWriter) Create(entry domain.PostHistoryEntry) (*domain.PostHistoryEntry, error) {
	f.created = append(f.created, entry)
	return &entry, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(context.Context, string, string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func newPublishService(conn *stubConnector, history *fakeHistoryWriter, sum *fakeSummarizer) *PublishService {
	reg := platform.NewRegistry(conn)
	if history == nil {
		history = &fakeHistoryWriter{}
	}
	var s Summarizer
	if sum != nil {
		s = sum
	}
	return NewPublishService(reg, history, s)
}

// ----- Tests -----

func TestPublish_EmptyContent(t *testing.T) {
	conn := &stubConnector{name: "linkedin", authenticated: true}
	s := newPublishService(conn, nil, nil)

	if _, err := s.Publish(context.Background(), "linkedin", ""); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err = %v; want ErrEmptyContent", err)
	}
	if conn.postCalls != 0 {
		t.Fatalf("empty content must not reach the connector")
	}
}

func TestPublish_UnknownPlatform(t *testing.T) {
	s := newPublishService(&stubConnector{name: "linkedin", authenticated: true}, nil, nil)
	if _, err := s.Publish(context.Background(), "myspace", "hello"); !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("err = %v; want ErrPlatformNotFound", err)
	}
}

func TestPublish_NotAuthenticated(t *testing.T) {
	conn := &stubConnector{name: "linkedin", authenticated: false}
	history := &fakeHistoryWriter{}
	s := newPublishService(conn, history, nil)

	if _, err := s.Publish(context.Background(), "linkedin", "hello"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v; want ErrNotAuthenticated", err)
	}
	if conn.postCalls != 0 || len(history.created) != 0 {
		t.Fatalf("unauthenticated publish must not post or record history")
	}
}

func TestPublish_SuccessRecordsHistory(t *testing.T) {
	conn := &stubConnector{
		name:          "linkedin",
		authenticated: true,
		result:        platform.PostResult{Success: true, PostID: "urn:li:share:9", URL: "https://www.linkedin.com/feed/update/urn:li:share:9"},
	}
	history := &fakeHistoryWriter{}
	sum := &fakeSummarizer{summary: "Widget launch recap"}
	s := newPublishService(conn, history, sum)

	result, err := s.Publish(context.Background(), "linkedin", "We shipped the widget!")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !result.Success || result.PostID != "urn:li:share:9" {
		t.Fatalf("result = %+v", result)
	}
	if conn.postedContent != "We shipped the widget!" {
		t.Fatalf("connector received %q", conn.postedContent)
	}
	if len(history.created) != 1 {
		t.Fatalf("history entries = %d; want 1", len(history.created))
	}
	entry := history.created[0]
	if entry.Status != domain.StatusPublished {
		t.Fatalf("status = %q; want published", entry.Status)
	}
	if entry.Platform != "linkedin" || entry.FullContent != "We shipped the widget!" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.AbbreviatedContent != "Widget launch recap" {
		t.Fatalf("abbreviated = %q; want summarizer output", entry.AbbreviatedContent)
	}
	if entry.PostedAt.IsZero() {
		t.Fatalf("PostedAt must be set")
	}
}

func TestPublish_FailureStillRecordsHistory(t *testing.T) {
	conn := &stubConnector{
		name:          "facebook",
		authenticated: true,
		result:        platform.PostResult{Success: false, Error: "Facebook API error: 500"},
	}
	history := &fakeHistoryWriter{}
	s := newPublishService(conn, history, &fakeSummarizer{summary: "Outage note"})

	result, err := s.Publish(context.Background(), "facebook", "post body")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.Success {
		t.Fatalf("result should carry the provider failure")
	}
	if len(history.created) != 1 || history.created[0].Status != domain.StatusFailed {
		t.Fatalf("failed publish must be recorded with failed status: %+v", history.created)
	}
}

func TestPublish_SummarizationFailureFallsBackToTruncation(t *testing.T) {
	long := strings.Repeat("0123456789", 15) // 150 chars
	conn := &stubConnector{name: "linkedin", authenticated: true, result: platform.PostResult{Success: true}}
	history := &fakeHistoryWriter{}
	s := newPublishService(conn, history, &fakeSummarizer{err: errors.New("provider down")})

	if _, err := s.Publish(context.Background(), "linkedin", long); err != nil {
		t.Fatalf("summarization failure must not fail the publish: %v", err)
	}
	if len(history.created) != 1 {
		t.Fatalf("history entries = %d; want 1", len(history.created))
	}
	if got := history.created[0].AbbreviatedContent; got != long[:100] {
		t.Fatalf("abbreviated = %q; want first 100 characters", got)
	}
}

func TestPublish_NilSummarizerTruncates(t *testing.T) {
	conn := &stubConnector{name: "linkedin", authenticated: true, result: platform.PostResult{Success: true}}
	history := &fakeHistoryWriter{}
	s := newPublishService(conn, history, nil)

	if _, err := s.Publish(context.Background(), "linkedin", "short post"); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if history.created[0].AbbreviatedContent != "short post" {
		t.Fatalf("abbreviated = %q", history.created[0].AbbreviatedContent)
	}
}

func TestPublish_HistoryWriteErrorDoesNotFailPublish(t *testing.T) {
	conn := &stubConnector{name: "linkedin", authenticated: true, result: platform.PostResult{Success: true}}
	history := &fakeHistoryWriter{err: errors.New("disk full")}
	s := newPublishService(conn, history, &fakeSummarizer{summary: "s"})

	result, err := s.Publish(context.Background(), "linkedin", "hello")
	if err != nil {
		t.Fatalf("history write error must not surface: %v", err)
	}
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
}
