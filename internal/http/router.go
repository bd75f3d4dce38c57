// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, and security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/socialdraft/go-social-backend/internal/config"
	"github.com/socialdraft/go-social-backend/internal/http/handlers"
	"github.com/socialdraft/go-social-backend/internal/http/middleware"
	"github.com/socialdraft/go-social-backend/internal/llm"
	"github.com/socialdraft/go-social-backend/internal/platform"
	"github.com/socialdraft/go-social-backend/internal/services"
	"github.com/socialdraft/go-social-backend/internal/store"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), CORS and security
// headers, health and metrics endpoints, builds the platform connector
// registry and services from config, and then mounts the versioned public API
// under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip compression
//  8. CORS and security headers
func RegisterRoutes(r *gin.Engine, base *store.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction; OAuth callbacks put codes in the
	// query string, so the redactor masks them before anything is emitted.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Response compression (posts and context lists are plain text heavy)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: stores ← flat files, connectors ← config + tokens
	contexts := store.NewContextStore(base)
	history := store.NewHistoryStore(base)
	tokens := store.NewTokenStore(base)

	registry := platform.NewRegistry(
		platform.NewLinkedIn(cfg.LinkedIn.ClientID, cfg.LinkedIn.ClientSecret,
			cfg.RedirectURL(store.PlatformLinkedIn), tokens),
		platform.NewFacebook(cfg.Facebook.AppID, cfg.Facebook.AppSecret,
			cfg.RedirectURL(store.PlatformFacebook), tokens),
	)

	client := llm.New(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	generator := services.NewGenerationService(client, contexts, history)
	summarizer := services.NewSummarizationService(client)
	publisher := services.NewPublishService(registry, history, summarizer)

	h := handlers.New(handlers.Options{
		Contexts:      contexts,
		History:       history,
		Registry:      registry,
		Generator:     generator,
		Summarizer:    summarizer,
		Publisher:     publisher,
		AppBaseURL:    cfg.AppBaseURL,
		LLMConfigured: client.Configured(),
	})

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Business context
		api.GET("/context", h.ListContext)
		api.POST("/context", h.CreateContext)
		api.GET("/context/:id", h.GetContext)
		api.PUT("/context/:id", h.UpdateContext)
		api.DELETE("/context/:id", h.DeleteContext)

		// Post history
		api.GET("/history", h.ListHistory)
		api.POST("/history", h.CreateHistory)
		api.GET("/history/:id", h.GetHistory)
		api.PUT("/history/:id", h.UpdateHistory)
		api.DELETE("/history/:id", h.DeleteHistory)

		// AI
		api.POST("/ai/generate", h.Generate)
		api.POST("/ai/summarize", h.Summarize)

		// Platform connections
		api.GET("/platforms/status", h.Status)
		api.GET("/platforms/:platform/auth", h.Auth)
		api.GET("/platforms/:platform/callback", h.Callback)
		api.POST("/platforms/:platform/post", h.Post)
		api.POST("/platforms/:platform/disconnect", h.Disconnect)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
