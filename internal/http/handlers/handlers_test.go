package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/socialdraft/go-social-backend/internal/platform"
	"github.com/socialdraft/go-social-backend/internal/services"
	"github.com/socialdraft/go-social-backend/internal/store"
)

// ---------- shared fakes ----------

// stubGenerator is a flexible GenerationService stub.
type stubGenerator struct {
	generate func(context.Context, string, services.GenerateOptions) (string, error)
	calls    int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts services.GenerateOptions) (string, error) {
	s.calls++
	if s.generate == nil {
		return "", nil
	}
	return s.generate(ctx, prompt, opts)
}

// stubSummarizer is a flexible SummarizationService stub.
type stubSummarizer struct {
	summarize func(context.Context, string, string) (string, error)
	calls     int
}

func (s *stubSummarizer) Summarize(ctx context.Context, content, platform string) (string, error) {
	s.calls++
	if s.summarize == nil {
		return "", nil
	}
	return s.summarize(ctx, content, platform)
}

// stubPublisher is a flexible PublishService stub.
type stubPublisher struct {
	publish func(context.Context, string, string) (platform.PostResult, error)
}

func (s *stubPublisher) Publish(ctx context.Context, name, content string) (platform.PostResult, error) {
	if s.publish == nil {
		return platform.PostResult{}, nil
	}
	return s.publish(ctx, name, content)
}

// stubConn is a configurable platform.Connector.
type stubConn struct {
	cfg      platform.Config
	authed   bool
	authURL  string
	callback func(context.Context, string) bool

	disconnected bool
}

func (s *stubConn) Config() platform.Config { return s.cfg }
func (s *stubConn) IsAuthenticated() bool   { return s.authed }
func (s *stubConn) AuthURL() string         { return s.authURL }
func (s *stubConn) HandleCallback(ctx context.Context, code string) bool {
	if s.callback == nil {
		return true
	}
	return s.callback(ctx, code)
}
func (s *stubConn) Post(context.Context, string) platform.PostResult { return platform.PostResult{} }
func (s *stubConn) Disconnect() error {
	s.disconnected = true
	return nil
}

// ---------- wiring ----------

type testEnv struct {
	handlers  *Handlers
	router    *gin.Engine
	contexts  *store.ContextStore
	history   *store.HistoryStore
	generator *stubGenerator
	summarize *stubSummarizer
	publisher *stubPublisher
	conn      *stubConn
}

// newTestEnv wires Handlers against real flat-file stores (in a temp dir)
// and stub services, and mounts the API routes the way the router does.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	env := &testEnv{
		contexts:  store.NewContextStore(base),
		history:   store.NewHistoryStore(base),
		generator: &stubGenerator{},
		summarize: &stubSummarizer{},
		publisher: &stubPublisher{},
		conn: &stubConn{
			cfg:     platform.Config{Name: "linkedin", DisplayName: "LinkedIn", MaxLength: 3000},
			authURL: "https://www.linkedin.com/oauth/v2/authorization?client_id=x",
		},
	}

	env.handlers = New(Options{
		Contexts:      env.contexts,
		History:       env.history,
		Registry:      platform.NewRegistry(env.conn),
		Generator:     env.generator,
		Summarizer:    env.summarize,
		Publisher:     env.publisher,
		AppBaseURL:    "http://localhost:8080",
		LLMConfigured: true,
	})

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/context", env.handlers.ListContext)
		api.POST("/context", env.handlers.CreateContext)
		api.GET("/context/:id", env.handlers.GetContext)
		api.PUT("/context/:id", env.handlers.UpdateContext)
		api.DELETE("/context/:id", env.handlers.DeleteContext)

		api.GET("/history", env.handlers.ListHistory)
		api.POST("/history", env.handlers.CreateHistory)
		api.GET("/history/:id", env.handlers.GetHistory)
		api.PUT("/history/:id", env.handlers.UpdateHistory)
		api.DELETE("/history/:id", env.handlers.DeleteHistory)

		api.POST("/ai/generate", env.handlers.Generate)
		api.POST("/ai/summarize", env.handlers.Summarize)

		api.GET("/platforms/status", env.handlers.Status)
		api.GET("/platforms/:platform/auth", env.handlers.Auth)
		api.GET("/platforms/:platform/callback", env.handlers.Callback)
		api.POST("/platforms/:platform/post", env.handlers.Post)
		api.POST("/platforms/:platform/disconnect", env.handlers.Disconnect)
	}
	env.router = r
	return env
}

// do performs one request against the test router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorder body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
}

// wantError asserts the standard error envelope code.
func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d (body %s)", w.Code, status, w.Body.String())
	}
	var resp ErrorResponse
	decode(t, w, &resp)
	if resp.Code != code {
		t.Fatalf("error code = %q; want %q", resp.Code, code)
	}
}
