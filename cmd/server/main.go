// Command server runs the WhatsApp AI bot backend.
//
// Startup order: environment (.env) → config → logger → OpenTelemetry →
// storage/limiter/generator selection → router → HTTP server with graceful
// shutdown. Backend selection is config-driven: conversations persist to
// SQLite when DB_PATH is set, the rate limiter coordinates through Redis when
// REDIS_URL is set, and both fall back to in-process implementations
// otherwise.
package main

//	@title			WhatsApp AI Bot API
//	@version		1.0.0
//	@description	Multi-tenant WhatsApp bot backend with AI-generated replies,
//	@description	quick responses, and human escalation.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/leikymain/whatsapp-bot-backend/docs"
	"github.com/leikymain/whatsapp-bot-backend/internal/config"
	"github.com/leikymain/whatsapp-bot-backend/internal/generator"
	httpapi "github.com/leikymain/whatsapp-bot-backend/internal/http"
	"github.com/leikymain/whatsapp-bot-backend/internal/observability"
	"github.com/leikymain/whatsapp-bot-backend/internal/ratelimit"
	"github.com/leikymain/whatsapp-bot-backend/internal/repo"
	"github.com/leikymain/whatsapp-bot-backend/internal/services"
	"github.com/leikymain/whatsapp-bot-backend/internal/sysutil"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ct, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ct); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Conversation storage: SQLite when configured, in-memory otherwise.
	var conversations services.ConversationStore
	if cfg.DBPath != "" {
		db, err := repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open sqlite")
		}
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate sqlite")
		}
		conversations = repo.NewSQLiteConversationStore(db)
		log.Info().Str("path", cfg.DBPath).Msg("conversation store: sqlite")
	} else {
		conversations = repo.NewMemoryConversationStore()
		log.Info().Msg("conversation store: in-memory")
	}

	// Rate limiter: Redis-coordinated when configured, in-process otherwise.
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		rl, err := ratelimit.NewRedis(cfg.RedisURL, cfg.RateLimit, cfg.RateWindow)
		if err != nil {
			log.Fatal().Err(err).Msg("redis limiter")
		}
		defer func() { _ = rl.Close() }()
		limiter = rl
		log.Info().Msg("rate limiter: redis")
	} else {
		limiter = ratelimit.NewSlidingWindow(cfg.RateLimit, cfg.RateWindow)
		log.Info().Msg("rate limiter: in-process")
	}

	// Generator: absent credential means every reply uses the fallback text,
	// which keeps the service usable for demos without an API key.
	var gen services.Generator
	if cfg.Anthropic.APIKey != "" {
		client := generator.New(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		client.MaxTokens = cfg.Anthropic.MaxTokens
		client.Temperature = cfg.Anthropic.Temperature
		gen = client
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set, generation disabled")
	}

	if cfg.APIToken == "" {
		log.Warn().Msg("API_TOKEN not set, authentication gate disabled")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Dependencies{
		Limiter:       limiter,
		Configs:       repo.NewMemoryConfigStore(),
		Conversations: conversations,
		Generator:     gen,
		Version:       version,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
