package handlers

import (
	"net/http"
	"testing"

	"github.com/socialdraft/go-social-backend/internal/domain"
)

func TestCreateContext_ValidatesInput(t *testing.T) {
	env := newTestEnv(t)

	// Invalid JSON
	w := env.do(t, http.MethodPost, "/api/v1/context", nil)
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	// Unknown type
	w = env.do(t, http.MethodPost, "/api/v1/context", CreateContextRequest{
		Type: "mood", Title: "x", Content: "y",
	})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	// Missing title
	w = env.do(t, http.MethodPost, "/api/v1/context", map[string]string{
		"type": "business", "content": "y",
	})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)
}

func TestContext_CRUDRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	// Create (type case-insensitive)
	w := env.do(t, http.MethodPost, "/api/v1/context", CreateContextRequest{
		Type: "Business", Title: "  Mission  ", Content: "We build widgets",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create -> %d: %s", w.Code, w.Body.String())
	}
	var created domain.ContextEntry
	decode(t, w, &created)
	if created.ID == "" || created.Type != domain.ContextBusiness || created.Title != "Mission" {
		t.Fatalf("created = %+v", created)
	}

	// List contains it
	w = env.do(t, http.MethodGet, "/api/v1/context", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	var entries []domain.ContextEntry
	decode(t, w, &entries)
	if len(entries) != 1 || entries[0].ID != created.ID {
		t.Fatalf("entries = %+v", entries)
	}

	// Get by id
	w = env.do(t, http.MethodGet, "/api/v1/context/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d", w.Code)
	}

	// Partial update: only content changes
	w = env.do(t, http.MethodPut, "/api/v1/context/"+created.ID, map[string]string{
		"content": "We build better widgets",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update -> %d: %s", w.Code, w.Body.String())
	}
	var updated domain.ContextEntry
	decode(t, w, &updated)
	if updated.Content != "We build better widgets" || updated.Title != "Mission" {
		t.Fatalf("updated = %+v", updated)
	}

	// Delete
	w = env.do(t, http.MethodDelete, "/api/v1/context/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d", w.Code)
	}

	// Gone now
	w = env.do(t, http.MethodGet, "/api/v1/context/"+created.ID, nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestContext_UnknownIDReturns404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/context/nope", nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = env.do(t, http.MethodPut, "/api/v1/context/nope", map[string]string{"title": "x"})
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = env.do(t, http.MethodDelete, "/api/v1/context/nope", nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestUpdateContext_RejectsBadType(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/context", CreateContextRequest{
		Type: "general", Title: "t", Content: "c",
	})
	var created domain.ContextEntry
	decode(t, w, &created)

	w = env.do(t, http.MethodPut, "/api/v1/context/"+created.ID, map[string]string{"type": "vibes"})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)
}

func TestListContext_EmptyStoreReturnsEmptyArray(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/v1/context", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("body = %q; want empty JSON array", got)
	}
}
