package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leikymain/whatsapp-bot-backend/internal/config"
	"github.com/leikymain/whatsapp-bot-backend/internal/ratelimit"
	"github.com/leikymain/whatsapp-bot-backend/internal/repo"
)

func newTestServer(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, Dependencies{
		Limiter:       ratelimit.NewSlidingWindow(100, time.Minute),
		Configs:       repo.NewMemoryConfigStore(),
		Conversations: repo.NewMemoryConversationStore(),
		Generator:     nil, // pipeline answers with fallback text
		Version:       "test",
	}, cfg)
	return r
}

func baseConfig() config.Config {
	return config.Config{
		APIBasePath: "/",
		OTEL:        config.OTELConfig{ServiceName: "whatsapp-bot-test"},
	}
}

func TestRouter_HealthAndRootAreOpen(t *testing.T) {
	cfg := baseConfig()
	cfg.APIToken = "sekret"
	r := newTestServer(t, cfg)

	for _, path := range []string{"/health", "/"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d; want 200 without credentials", path, w.Code)
		}
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	cfg := baseConfig()
	cfg.APIToken = "sekret"
	r := newTestServer(t, cfg)

	// No token: rejected.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d; want 401", w.Code)
	}
	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("bad error envelope: %v", err)
	}
	if envelope["code"] != "unauthorized" {
		t.Fatalf("code = %v; want unauthorized", envelope["code"])
	}

	// Correct token: admitted.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with token status = %d; want 200", w.Code)
	}
}

func TestRouter_EndToEndMessage_FallbackWithoutGenerator(t *testing.T) {
	r := newTestServer(t, baseConfig())

	form := url.Values{
		"message": {"Hola"},
		"phone":   {"+34600111222"},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/message/send", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	// The demo tenant's restaurant template answers "hola" via quick response.
	if resp["response"] == "" {
		t.Fatalf("empty response: %v", resp)
	}
	if resp["conversation_id"] != "demo_+34600111222" {
		t.Fatalf("conversation_id = %v", resp["conversation_id"])
	}
}

func TestRouter_UnknownRouteEnvelope(t *testing.T) {
	r := newTestServer(t, baseConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if envelope["code"] != "not_found" {
		t.Fatalf("code = %v", envelope["code"])
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := newTestServer(t, baseConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/templates", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d; want 405", w.Code)
	}
}

func TestRouter_RequestIDAndSecurityHeaders(t *testing.T) {
	r := newTestServer(t, baseConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Errorf("X-Request-ID not set")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("security headers missing")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r := newTestServer(t, baseConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}

func TestGroupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if g := groupWithPrefix(r, "/"); g.BasePath() != "/" {
		t.Errorf("root prefix base = %q", g.BasePath())
	}
	if g := groupWithPrefix(r, "/api/v1"); g.BasePath() != "/api/v1" {
		t.Errorf("prefixed base = %q", g.BasePath())
	}
}
