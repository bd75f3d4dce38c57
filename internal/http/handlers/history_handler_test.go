package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/socialdraft/go-social-backend/internal/domain"
)

func TestCreateHistory_UsesSummarizer(t *testing.T) {
	env := newTestEnv(t)
	env.summarize.summarize = func(_ context.Context, content, platform string) (string, error) {
		if platform != "linkedin" {
			t.Fatalf("platform = %q", platform)
		}
		return "short summary", nil
	}

	w := env.do(t, http.MethodPost, "/api/v1/history", CreateHistoryRequest{
		Platform: "LinkedIn", Content: "full post body",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create -> %d: %s", w.Code, w.Body.String())
	}
	var entry domain.PostHistoryEntry
	decode(t, w, &entry)
	if entry.Platform != "linkedin" || entry.AbbreviatedContent != "short summary" ||
		entry.FullContent != "full post body" || entry.Status != domain.StatusPublished {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.PostedAt.IsZero() {
		t.Fatalf("PostedAt must be set")
	}
}

func TestCreateHistory_SummarizerFailureFallsBackToAbbreviation(t *testing.T) {
	env := newTestEnv(t)
	env.summarize.summarize = func(context.Context, string, string) (string, error) {
		return "", errors.New("provider down")
	}

	long := strings.Repeat("x", 150)
	w := env.do(t, http.MethodPost, "/api/v1/history", CreateHistoryRequest{
		Platform: "facebook", Content: long,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create -> %d: %s", w.Code, w.Body.String())
	}
	var entry domain.PostHistoryEntry
	decode(t, w, &entry)
	if want := long[:97] + "..."; entry.AbbreviatedContent != want {
		t.Fatalf("abbreviated = %q; want %q", entry.AbbreviatedContent, want)
	}
}

func TestCreateHistory_Validation(t *testing.T) {
	env := newTestEnv(t)

	// Missing content
	w := env.do(t, http.MethodPost, "/api/v1/history", map[string]string{"platform": "linkedin"})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	// Unknown status
	w = env.do(t, http.MethodPost, "/api/v1/history", CreateHistoryRequest{
		Platform: "linkedin", Content: "c", Status: "scheduled",
	})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)
}

func TestHistory_ListNewestFirstAndUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	env.summarize.summarize = func(_ context.Context, content, _ string) (string, error) {
		return content, nil
	}

	for _, content := range []string{"first", "second"} {
		w := env.do(t, http.MethodPost, "/api/v1/history", CreateHistoryRequest{
			Platform: "linkedin", Content: content,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %q -> %d", content, w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/api/v1/history", nil)
	var entries []domain.PostHistoryEntry
	decode(t, w, &entries)
	if len(entries) != 2 || entries[0].FullContent != "second" || entries[1].FullContent != "first" {
		t.Fatalf("expected newest first, got %+v", entries)
	}

	// Update status of the newest entry
	id := entries[0].ID
	w = env.do(t, http.MethodPut, "/api/v1/history/"+id, map[string]string{"status": "failed"})
	if w.Code != http.StatusOK {
		t.Fatalf("update -> %d: %s", w.Code, w.Body.String())
	}
	var updated domain.PostHistoryEntry
	decode(t, w, &updated)
	if updated.Status != domain.StatusFailed {
		t.Fatalf("status = %q", updated.Status)
	}

	// Invalid status is rejected
	w = env.do(t, http.MethodPut, "/api/v1/history/"+id, map[string]string{"status": "queued"})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	// Delete and verify absence
	w = env.do(t, http.MethodDelete, "/api/v1/history/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/api/v1/history/"+id, nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestHistory_UnknownIDReturns404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/history/nope", nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = env.do(t, http.MethodPut, "/api/v1/history/nope", map[string]string{"status": "failed"})
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = env.do(t, http.MethodDelete, "/api/v1/history/nope", nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)
}
