package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("test-key", "")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c, srv
}

func TestNew_Defaults(t *testing.T) {
	c := New("k", "")
	if c.Model != defaultModel {
		t.Errorf("model default = %q", c.Model)
	}
	if c.MaxTokens != 500 {
		t.Errorf("max tokens = %d", c.MaxTokens)
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("base url = %q", c.BaseURL)
	}
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	c := New("", "")
	_, err := c.Generate(context.Background(), "hola", nil, domain.TenantConfig{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGenerate_Success(t *testing.T) {
	var captured messagesRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "¡Claro! Abrimos a las 13:00."}},
		})
	})

	cfg := domain.TenantConfig{BusinessName: "Bar Pepe", KnowledgeBase: "Horario: 13:00-16:00"}
	got, err := c.Generate(context.Background(), "¿A qué hora abrís?", nil, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "¡Claro! Abrimos a las 13:00." {
		t.Errorf("reply = %q", got)
	}

	if captured.Model != defaultModel || captured.MaxTokens != 500 {
		t.Errorf("request params = %+v", captured)
	}
	if !strings.Contains(captured.System, "Bar Pepe") || !strings.Contains(captured.System, "Horario: 13:00-16:00") {
		t.Errorf("system prompt missing tenant context: %q", captured.System)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != domain.RoleUser {
		t.Errorf("messages = %+v", captured.Messages)
	}
}

func TestGenerate_SendsOnlyTrailingHistory(t *testing.T) {
	var captured messagesRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "ok"}},
		})
	})

	history := make([]domain.ConversationEntry, 8)
	for i := range history {
		history[i] = domain.ConversationEntry{Role: domain.RoleUser, Content: strings.Repeat("m", i+1)}
	}

	if _, err := c.Generate(context.Background(), "último", history, domain.TenantConfig{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// 5 history entries + the inbound message.
	if len(captured.Messages) != HistoryContext+1 {
		t.Fatalf("sent %d messages, want %d", len(captured.Messages), HistoryContext+1)
	}
	// The oldest three entries must have been dropped.
	if captured.Messages[0].Content != "mmmm" {
		t.Errorf("first history entry = %q", captured.Messages[0].Content)
	}
	if captured.Messages[len(captured.Messages)-1].Content != "último" {
		t.Errorf("inbound message not last")
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.Generate(context.Background(), "hola", nil, domain.TenantConfig{})
	if err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestGenerate_APIErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	})
	_, err := c.Generate(context.Background(), "hola", nil, domain.TenantConfig{})
	if err == nil || !strings.Contains(err.Error(), "authentication_error") {
		t.Fatalf("expected API error surfaced, got %v", err)
	}
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
	})
	_, err := c.Generate(context.Background(), "hola", nil, domain.TenantConfig{})
	if err == nil {
		t.Fatalf("expected error on empty completion")
	}
}

func TestGenerate_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "ok"}},
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Generate(ctx, "hola", nil, domain.TenantConfig{}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
