package handlers

import (
	"context"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
	"github.com/leikymain/whatsapp-bot-backend/internal/services"
)

// MessageProcessor is the slice of the message pipeline the HTTP layer needs.
// Defined here so handlers can be tested against a fake.
type MessageProcessor interface {
	Process(ctx context.Context, tenantID, counterpartID, text, clientIdentity string) (*domain.BotResponse, error)
}

// Handlers bundles the application services behind the HTTP endpoints.
// Construct with New and register routes via httpapi.RegisterRoutes.
type Handlers struct {
	pipeline MessageProcessor
	tenants  *services.TenantService
	convs    *services.ConversationService
	version  string
}

// New builds the handler set from its service dependencies.
func New(pipeline MessageProcessor, tenants *services.TenantService, convs *services.ConversationService, version string) *Handlers {
	return &Handlers{
		pipeline: pipeline,
		tenants:  tenants,
		convs:    convs,
		version:  version,
	}
}
