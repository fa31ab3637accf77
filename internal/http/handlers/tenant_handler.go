// Client (tenant) configuration HTTP handlers.
//
// This file exposes the endpoints that manage per-client business
// configuration and the built-in business templates:
//   - POST /client/configure      (full overwrite of one client's config)
//   - GET  /client/:id/config     (read one client's config)
//   - GET  /templates             (list built-in templates)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
	"github.com/leikymain/whatsapp-bot-backend/internal/services"
)

// ConfigureResponse acknowledges a successful client configuration.
type ConfigureResponse struct {
	Status   string `json:"status" example:"configured"`
	ClientID string `json:"client_id" example:"restaurante-pepe"`
	Message  string `json:"message" example:"Cliente configurado correctamente"`
}

// TemplatesResponse lists the built-in business templates in their canonical
// order, with the full template contents keyed by id.
type TemplatesResponse struct {
	Templates []string                       `json:"templates"`
	Details   map[string]domain.TenantConfig `json:"details"`
}

// ConfigureClient godoc
// @ID          configureClient
// @Summary     Configure a client
// @Description Stores the complete business configuration for a client. The
// @Description write is a full overwrite: fields omitted from the payload are
// @Description reset, not merged.
// @Tags        Clients
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.TenantConfig  true  "Client configuration"
//
// @Success     200  {object}  handlers.ConfigureResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /client/configure [post]
func (h *Handlers) ConfigureClient(c *gin.Context) {
	var cfg domain.TenantConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid configuration payload")
		return
	}

	if err := h.tenants.Configure(c.Request.Context(), cfg); err != nil {
		switch err {
		case services.ErrInvalidTenantID:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "client_id is required")
		default:
			failInternal(c, ErrCodeConfigureFailed, err)
		}
		return
	}

	ok(c, http.StatusOK, ConfigureResponse{
		Status:   "configured",
		ClientID: cfg.TenantID,
		Message:  "Cliente configurado correctamente",
	})
}

// GetClientConfig godoc
// @ID          getClientConfig
// @Summary     Get a client's configuration
// @Description Returns the stored configuration for the given client id.
// @Description Reading never creates a configuration; unknown ids are 404.
// @Tags        Clients
// @Produce     json
//
// @Param       id  path  string  true  "Client id"
//
// @Success     200  {object}  domain.TenantConfig
// @Failure     404  {object}  handlers.ErrorResponse  "Client not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /client/{id}/config [get]
func (h *Handlers) GetClientConfig(c *gin.Context) {
	id := c.Param("id")

	cfg, err := h.tenants.Get(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrTenantNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "client not found")
		default:
			failInternal(c, ErrCodeInternal, err)
		}
		return
	}
	ok(c, http.StatusOK, cfg)
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List built-in business templates
// @Description Returns the template ids in canonical order together with the
// @Description full template contents.
// @Tags        Clients
// @Produce     json
//
// @Success     200  {object}  handlers.TemplatesResponse
// @Router      /templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	entries := h.tenants.Templates()

	ids := make([]string, 0, len(entries))
	details := make(map[string]domain.TenantConfig, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
		details[e.ID] = e.Template
	}

	ok(c, http.StatusOK, TemplatesResponse{Templates: ids, Details: details})
}
