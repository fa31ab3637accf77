// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and the bearer-token authentication gate.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Health and the service banner stay reachable without credentials
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

	"github.com/leikymain/whatsapp-bot-backend/internal/config"
	"github.com/leikymain/whatsapp-bot-backend/internal/http/handlers"
	"github.com/leikymain/whatsapp-bot-backend/internal/http/middleware"
	"github.com/leikymain/whatsapp-bot-backend/internal/ratelimit"
	"github.com/leikymain/whatsapp-bot-backend/internal/services"
)

// Dependencies carries the already-constructed backends the router needs.
// main selects the concrete implementations (in-memory vs SQLite stores,
// in-process vs Redis limiter, real vs absent generator) and owns their
// lifecycle; the router only wires them together.
type Dependencies struct {
	Limiter       ratelimit.Limiter
	Configs       services.ConfigStore
	Conversations services.ConversationStore
	Generator     services.Generator
	Version       string
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with phone/credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip response compression
//  7. Metrics
//  8. CORS and security headers
//
// The rate limiter is deliberately NOT middleware: admission control lives in
// the message pipeline so the limit applies identically to every message
// ingress and denial semantics stay with the domain (denied requests are not
// recorded against the window).
func RegisterRoutes(r *gin.Engine, deps Dependencies, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with PII redaction (phone numbers everywhere)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; largest legitimate payload is a
	//    client configuration with a full knowledge base)
	r.Use(limitBody(64 << 10))

	// 6) Compress responses (conversation histories benefit the most)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) CORS posture (allow all when no origins configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
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

	// Dependency injection: services ← injected backends
	tenants := services.NewTenantService(deps.Configs)
	convs := &services.ConversationService{Store: deps.Conversations}
	pipeline := services.NewMessagePipeline(deps.Limiter, tenants, deps.Conversations, deps.Generator)
	if cfg.Anthropic.Timeout > 0 {
		pipeline.GenerateTimeout = cfg.Anthropic.Timeout
	}
	h := handlers.New(pipeline, tenants, convs, deps.Version)

	// Unauthenticated surface: liveness, banner, docs
	r.GET("/health", h.Health)
	r.GET("/", h.Root)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Everything else sits behind the bearer-token gate
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.BearerToken(cfg.APIToken, func(c *gin.Context, status int, msg string) {
		handlers.Fail(c, status, handlers.ErrCodeUnauthorized, msg)
	}))
	{
		// Messages
		api.POST("/message/send", h.SendMessage)
		api.POST("/webhook/whatsapp", h.WhatsAppWebhook)

		// Clients
		api.POST("/client/configure", h.ConfigureClient)
		api.GET("/client/:id/config", h.GetClientConfig)
		api.GET("/templates", h.ListTemplates)

		// Conversations
		api.GET("/conversation/:client_id/:phone", h.GetConversation)
		api.DELETE("/conversation/:client_id/:phone", h.ClearConversation)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader. Reads past the cap error downstream.
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
