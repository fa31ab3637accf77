// Conversation history HTTP handlers.
//
//   - GET    /conversation/:client_id/:phone   (read history, optional tail)
//   - DELETE /conversation/:client_id/:phone   (clear history, idempotent)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
	"github.com/leikymain/whatsapp-bot-backend/internal/utils"
)

// ConversationResponse carries the (possibly truncated) message history of
// one conversation. Total is always the full stored length, independent of
// any ?limit truncation.
type ConversationResponse struct {
	Messages []domain.ConversationEntry `json:"messages"`
	Total    int                        `json:"total"`
}

// ClearResponse acknowledges a conversation clear.
type ClearResponse struct {
	Status string `json:"status" example:"cleared"`
}

// GetConversation godoc
// @ID          getConversation
// @Summary     Get conversation history
// @Description Returns the stored history between a client and a phone number
// @Description in chronological order. An unknown pair yields an empty list,
// @Description not a 404. Pass ?limit=N to receive only the most recent N entries.
// @Tags        Conversations
// @Produce     json
//
// @Param       client_id  path   string  true   "Client id"
// @Param       phone      path   string  true   "Counterpart phone number"
// @Param       limit      query  int     false  "Return only the last N entries"  minimum(1)
//
// @Success     200  {object}  handlers.ConversationResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversation/{client_id}/{phone} [get]
func (h *Handlers) GetConversation(c *gin.Context) {
	clientID := c.Param("client_id")
	phone := c.Param("phone")

	history, err := h.convs.History(c.Request.Context(), clientID, phone)
	if err != nil {
		failInternal(c, ErrCodeHistoryFailed, err)
		return
	}

	total := len(history)
	if limit := utils.AtoiDefault(c.Query("limit"), 0); limit > 0 && limit < total {
		history = history[total-limit:]
	}
	if history == nil {
		history = []domain.ConversationEntry{}
	}

	ok(c, http.StatusOK, ConversationResponse{Messages: history, Total: total})
}

// ClearConversation godoc
// @ID          clearConversation
// @Summary     Clear conversation history
// @Description Deletes all stored history for the conversation. Clearing an
// @Description unknown conversation succeeds with the same response.
// @Tags        Conversations
// @Produce     json
//
// @Param       client_id  path  string  true  "Client id"
// @Param       phone      path  string  true  "Counterpart phone number"
//
// @Success     200  {object}  handlers.ClearResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversation/{client_id}/{phone} [delete]
func (h *Handlers) ClearConversation(c *gin.Context) {
	clientID := c.Param("client_id")
	phone := c.Param("phone")

	if err := h.convs.Clear(c.Request.Context(), clientID, phone); err != nil {
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, ClearResponse{Status: "cleared"})
}
