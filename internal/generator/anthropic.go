// Package generator holds the external response-generation capability: a
// small client for the Anthropic Messages API that synthesizes a reply from
// the inbound message, recent history, and the tenant's knowledge base.
//
// The client is deliberately thin: one attempt per call, no retries, no
// streaming. Turning failures into user-facing fallback text is the
// pipeline's job, not the client's; errors here are returned as-is.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

const (
	defaultBaseURL     = "https://api.anthropic.com"
	defaultModel       = "claude-3-5-sonnet-20241022"
	defaultMaxTokens   = 500
	defaultTemperature = 0.7
	anthropicVersion   = "2023-06-01"

	// HistoryContext is how many trailing conversation entries are sent as
	// context with each generation call.
	HistoryContext = 5
)

// ErrMissingAPIKey is returned when the client has no credential configured.
// The pipeline maps it (like every other generator error) to fallback text.
var ErrMissingAPIKey = errors.New("anthropic api key not configured")

// systemPromptFormat carries the per-business instructions. The verbs
// correspond to business name and knowledge base.
const systemPromptFormat = `Eres un asistente virtual de WhatsApp para %s.

%s

INSTRUCCIONES:
- Responde de forma amigable, natural y concisa (máximo 2-3 mensajes cortos)
- Usa emojis ocasionalmente para ser cercano 😊
- Si no sabes algo, di "Déjame consultarlo con el equipo y te respondo enseguida"
- Siempre sé cortés y profesional
- Si detectas que el cliente necesita atención urgente o personalizada, indícalo claramente

Estilo: WhatsApp (informal pero profesional, mensajes cortos)
`

// Wire types for the Messages API.

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the Anthropic Messages API. The zero value is not usable;
// construct with New.
//
// BaseURL and HTTPClient are exposed so tests can point the client at an
// httptest server.
type Client struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	BaseURL     string
	HTTPClient  *http.Client

	// throttle paces outbound API calls so a burst of tenant traffic cannot
	// blow through the account's upstream limits.
	throttle *rate.Limiter
}

// New constructs a Client with production defaults: 30s request timeout and
// an outbound pace of 5 calls/second (burst 10). Empty model falls back to
// the default model.
func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		APIKey:      apiKey,
		Model:       model,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		BaseURL:     defaultBaseURL,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		throttle:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

// Generate synthesizes a reply for message given the trailing history and
// the tenant's business context. Only the last HistoryContext entries are
// sent; the full history stays in the store.
//
// Any failure (missing credential, transport error, non-2xx, empty
// completion) is returned as an error. The call is bounded by ctx and the
// client timeout.
func (c *Client) Generate(ctx context.Context, message string, history []domain.ConversationEntry, cfg domain.TenantConfig) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	if c.throttle != nil {
		if err := c.throttle.Wait(ctx); err != nil {
			return "", err
		}
	}

	name := cfg.BusinessName
	if name == "" {
		name = "un negocio"
	}
	system := fmt.Sprintf(systemPromptFormat, name, cfg.KnowledgeBase)

	if len(history) > HistoryContext {
		history = history[len(history)-HistoryContext:]
	}
	msgs := make([]apiMessage, 0, len(history)+1)
	for _, e := range history {
		msgs = append(msgs, apiMessage{Role: e.Role, Content: e.Content})
	}
	msgs = append(msgs, apiMessage{Role: domain.RoleUser, Content: message})

	payload, err := json.Marshal(messagesRequest{
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		System:      system,
		Messages:    msgs,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if body.Error != nil {
			return "", fmt.Errorf("anthropic: %s: %s", body.Error.Type, body.Error.Message)
		}
		return "", fmt.Errorf("anthropic: unexpected status %d", resp.StatusCode)
	}
	for _, block := range body.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", errors.New("anthropic: empty completion")
}
