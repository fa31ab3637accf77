// Message HTTP handlers.
//
// This file exposes the two message ingress points:
//   - POST /message/send       (demo/testing entry without a WhatsApp gateway)
//   - POST /webhook/whatsapp   (Twilio-style WhatsApp webhook)
//
// Handlers are transport-thin: they validate and normalize inputs, delegate
// to the message pipeline, and map sentinel errors to HTTP statuses.
//
// Webhook deliveries carry a MessageSid; Twilio retries a delivery when it
// does not get a timely 2xx, so the webhook handler replays the recorded
// response for a MessageSid it has already processed instead of running the
// pipeline twice.
package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leikymain/whatsapp-bot-backend/internal/http/middleware"
	"github.com/leikymain/whatsapp-bot-backend/internal/services"
)

// DefaultClientID is assumed when an ingress does not name a client.
const DefaultClientID = "demo"

// SendMessageRequest is the form payload for POST /message/send.
type SendMessageRequest struct {
	// Message is the inbound user text. Must be non-empty.
	Message string `form:"message" binding:"required" example:"¿Cuál es el horario?"`
	// Phone identifies the conversation counterpart. Must be non-empty.
	Phone string `form:"phone" binding:"required" example:"+34600111222"`
	// ClientID selects the business configuration; defaults to "demo".
	ClientID string `form:"client_id" example:"demo"`
}

// WebhookResponse is the JSON envelope returned to the WhatsApp gateway.
type WebhookResponse struct {
	Status   string `json:"status" example:"success"`
	Response string `json:"response"`
}

// sidCache remembers webhook responses per MessageSid for a bounded time so
// gateway retries replay the original response. Entries expire after ttl;
// expired entries are swept lazily once the cache grows past sweepAt.
type sidCache struct {
	mu      sync.Mutex
	entries map[string]sidEntry
	ttl     time.Duration
	sweepAt int
}

type sidEntry struct {
	resp    WebhookResponse
	savedAt time.Time
}

func newSIDCache(ttl time.Duration) *sidCache {
	return &sidCache{
		entries: make(map[string]sidEntry),
		ttl:     ttl,
		sweepAt: 10000,
	}
}

// get returns the recorded response for sid, if present and fresh.
func (c *sidCache) get(sid string, now time.Time) (WebhookResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, okHit := c.entries[sid]
	if !okHit || now.Sub(e.savedAt) > c.ttl {
		return WebhookResponse{}, false
	}
	return e.resp, true
}

// put records the response for sid and sweeps expired entries when the cache
// has grown large.
func (c *sidCache) put(sid string, resp WebhookResponse, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.sweepAt {
		for k, e := range c.entries {
			if now.Sub(e.savedAt) > c.ttl {
				delete(c.entries, k)
			}
		}
	}
	c.entries[sid] = sidEntry{resp: resp, savedAt: now}
}

// webhookSeen is the process-wide MessageSid replay cache. 24h mirrors the
// longest retry horizon WhatsApp gateways use.
var webhookSeen = newSIDCache(24 * time.Hour)

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message to the bot
// @Description Processes one inbound message through the response pipeline and
// @Description returns the bot reply plus the escalation verdict. Intended for
// @Description testing and demos without a WhatsApp gateway.
// @Tags        Messages
// @Accept      x-www-form-urlencoded
// @Produce     json
//
// @Param       message    formData  string  true   "Inbound user text"
// @Param       phone      formData  string  true   "Counterpart phone number"
// @Param       client_id  formData  string  false  "Business/client identifier"  default(demo)
//
// @Success     200  {object}  domain.BotResponse      "Bot reply"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limit exceeded"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /message/send [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message and phone are required")
		return
	}
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.Phone) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message and phone are required")
		return
	}
	clientID := req.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}

	resp, err := h.pipeline.Process(c.Request.Context(), clientID, req.Phone, req.Message, c.ClientIP())
	if err != nil {
		failPipeline(c, err)
		return
	}
	middleware.ObserveBotResponse(resp.ShouldEscalate)
	ok(c, http.StatusOK, resp)
}

// WhatsAppWebhook godoc
// @ID          whatsappWebhook
// @Summary     Receive a WhatsApp message from the gateway
// @Description Twilio-compatible webhook. Parses Body/From/To form fields,
// @Description strips the "whatsapp:" channel prefix, and runs the message
// @Description through the response pipeline. Redelivery of a MessageSid that
// @Description was already processed replays the recorded response.
// @Tags        Messages
// @Accept      x-www-form-urlencoded
// @Produce     json
//
// @Param       Body        formData  string  true   "Inbound message text"
// @Param       From        formData  string  true   "Sender, e.g. whatsapp:+34600111222"
// @Param       To          formData  string  false  "Receiving business number"
// @Param       MessageSid  formData  string  false  "Gateway delivery id, used for replay detection"
//
// @Success     200  {object}  handlers.WebhookResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limit exceeded"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /webhook/whatsapp [post]
func (h *Handlers) WhatsAppWebhook(c *gin.Context) {
	body := c.PostForm("Body")
	from := strings.TrimPrefix(c.PostForm("From"), "whatsapp:")
	to := strings.TrimPrefix(c.PostForm("To"), "whatsapp:")
	sid := strings.TrimSpace(c.PostForm("MessageSid"))

	if strings.TrimSpace(body) == "" || strings.TrimSpace(from) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Body and From are required")
		return
	}
	if to == "" {
		to = DefaultClientID
	}

	now := time.Now()
	if sid != "" {
		if prev, hit := webhookSeen.get(sid, now); hit {
			c.Header("Idempotency-Replayed", "true")
			ok(c, http.StatusOK, prev)
			return
		}
	}

	resp, err := h.pipeline.Process(c.Request.Context(), to, from, body, c.ClientIP())
	if err != nil {
		failPipeline(c, err)
		return
	}
	middleware.ObserveBotResponse(resp.ShouldEscalate)

	out := WebhookResponse{Status: "success", Response: resp.Response}
	if sid != "" {
		webhookSeen.put(sid, out, now)
	}
	ok(c, http.StatusOK, out)
}

// failPipeline maps pipeline sentinel errors to HTTP responses.
func failPipeline(c *gin.Context, err error) {
	switch err {
	case services.ErrRateLimited:
		fail(c, http.StatusTooManyRequests, ErrCodeRateLimited, "rate limit exceeded, try again later")
	case services.ErrInvalidTenantID:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "client id is required")
	default:
		failInternal(c, ErrCodeProcessFailed, err)
	}
}
