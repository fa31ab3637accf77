// Liveness and service-banner handlers. Both endpoints sit outside the
// authentication gate so uptime probes and humans can reach them without
// credentials.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

// HealthResponse reports liveness plus coarse usage counters.
type HealthResponse struct {
	Status              string `json:"status" example:"healthy"`
	Timestamp           string `json:"timestamp"`
	ActiveConversations int    `json:"active_conversations"`
	ConfiguredClients   int    `json:"configured_clients"`
}

// RootResponse is the unauthenticated service banner.
type RootResponse struct {
	Message   string   `json:"message" example:"WhatsApp AI Bot API - Activa"`
	Docs      string   `json:"docs" example:"/swagger/index.html"`
	Version   string   `json:"version" example:"1.0.0"`
	Templates []string `json:"business_templates"`
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Description Reports service health together with the number of active
// @Description conversations and configured clients. Counter failures degrade
// @Description to zero rather than failing the probe.
// @Tags        System
// @Produce     json
//
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ctx := c.Request.Context()

	convs, err := h.convs.Store.Count(ctx)
	if err != nil {
		convs = 0
	}
	clients, err := h.tenants.Store.Count(ctx)
	if err != nil {
		clients = 0
	}

	ok(c, http.StatusOK, HealthResponse{
		Status:              "healthy",
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		ActiveConversations: convs,
		ConfiguredClients:   clients,
	})
}

// Root godoc
// @ID          root
// @Summary     Service banner
// @Description Returns service identity, docs location, and the available
// @Description business template ids.
// @Tags        System
// @Produce     json
//
// @Success     200  {object}  handlers.RootResponse
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, RootResponse{
		Message:   "WhatsApp AI Bot API - Activa",
		Docs:      "/swagger/index.html",
		Version:   h.version,
		Templates: domain.TemplateIDs(),
	})
}
