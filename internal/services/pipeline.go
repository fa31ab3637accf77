// Package services – MessagePipeline
//
// This file implements the per-message decision sequence: rate admission,
// tenant config resolution, escalation evaluation, quick-response matching,
// generation, and history recording. The processing order is fixed and load
// bearing: escalation is evaluated before any response path, so an
// escalating message never reaches the matcher or the generator; the inbound
// message is recorded before a response is chosen, so a generator failure
// still leaves the user's message in history.
//
// Observability: Process is OpenTelemetry-instrumented; spans carry tenant
// and conversation identifiers plus the chosen response path.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
	"github.com/leikymain/whatsapp-bot-backend/internal/ratelimit"
)

const (
	// HandoffText is the fixed reply for escalated messages.
	HandoffText = "Entiendo tu situación. Un miembro de nuestro equipo te contactará de inmediato para ayudarte. Gracias por tu paciencia."

	// FallbackText is the fixed apology used whenever generation fails. It
	// is the pipeline's answer to every generator fault; the caller never
	// sees the underlying error.
	FallbackText = "Disculpa, estoy teniendo problemas técnicos. Un miembro del equipo te responderá enseguida."
)

// Generator is the external response-generation capability. Stateless per
// call; the pipeline performs a single attempt and converts any error into
// FallbackText.
type Generator interface {
	Generate(ctx context.Context, message string, history []domain.ConversationEntry, cfg domain.TenantConfig) (string, error)
}

// MessagePipeline orchestrates one inbound message end to end.
type MessagePipeline struct {
	Limiter       ratelimit.Limiter
	Tenants       *TenantService
	Conversations ConversationStore
	Generator     Generator

	Escalation EscalationPolicy
	Quick      QuickResponseMatcher

	// GenerateTimeout bounds the generation call. A generation that outlives
	// it is treated like any other generator failure and answered with
	// FallbackText rather than left pending.
	GenerateTimeout time.Duration
}

// NewMessagePipeline wires a pipeline with a 45s generation deadline.
func NewMessagePipeline(lim ratelimit.Limiter, tenants *TenantService, convs ConversationStore, gen Generator) *MessagePipeline {
	return &MessagePipeline{
		Limiter:         lim,
		Tenants:         tenants,
		Conversations:   convs,
		Generator:       gen,
		GenerateTimeout: 45 * time.Second,
	}
}

// Process runs the decision sequence for one inbound message and returns the
// synthesized response together with the escalation verdict.
//
// A rate-limit denial returns ErrRateLimited before anything else happens:
// no config is created, nothing is recorded. Every other internal fault on
// the response path degrades to fallback content so the conversation always
// gets a reply.
func (p *MessagePipeline) Process(ctx context.Context, tenantID, counterpartID, text, clientIdentity string) (*domain.BotResponse, error) {
	tr := otel.Tracer("services/MessagePipeline")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("conversation.key", domain.ConversationKey(tenantID, counterpartID)),
		),
	)
	defer span.End()

	// Admission control. A limiter backend fault counts as a denial: a
	// broken limiter must not wave traffic through.
	allowed, err := p.Limiter.Allow(ctx, clientIdentity, time.Now())
	if err != nil {
		log.Warn().Err(err).Str("identity", clientIdentity).Msg("rate limiter backend failure, denying")
		return nil, ErrRateLimited
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	cfg, err := p.Tenants.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	escalate, reason := p.Escalation.Evaluate(text, cfg)

	// History as it stood before this message: generation context must not
	// include the inbound message twice.
	prior, err := p.Conversations.History(ctx, tenantID, counterpartID)
	if err != nil {
		return nil, err
	}

	// Record the user message before choosing a response, so a generation
	// failure still leaves it in history.
	if _, err := p.Conversations.Append(ctx, tenantID, counterpartID, domain.RoleUser, text); err != nil {
		return nil, err
	}

	var reply string
	switch {
	case escalate:
		span.SetAttributes(attribute.String("response.path", "escalated"))
		reply = HandoffText
	default:
		if quick, ok := p.Quick.Match(text, cfg); ok {
			span.SetAttributes(attribute.String("response.path", "quick_response"))
			reply = quick
		} else {
			span.SetAttributes(attribute.String("response.path", "generated"))
			reply = p.generate(ctx, text, prior, cfg)
		}
	}

	if _, err := p.Conversations.Append(ctx, tenantID, counterpartID, domain.RoleAssistant, reply); err != nil {
		return nil, err
	}

	return &domain.BotResponse{
		Response:         reply,
		ShouldEscalate:   escalate,
		EscalationReason: reason,
		ConversationID:   domain.ConversationKey(tenantID, counterpartID),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// generate invokes the external capability once, fail-closed: any error
// (missing credential, upstream fault, timeout) becomes FallbackText.
func (p *MessagePipeline) generate(ctx context.Context, text string, history []domain.ConversationEntry, cfg domain.TenantConfig) string {
	if p.Generator == nil {
		return FallbackText
	}

	if p.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.GenerateTimeout)
		defer cancel()
	}

	reply, err := p.Generator.Generate(ctx, text, history, cfg)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", cfg.TenantID).Msg("generation failed, using fallback reply")
		return FallbackText
	}
	return reply
}
