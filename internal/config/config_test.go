package config

import (
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"API_BASE_PATH", "API_TOKEN", "RATE_LIMIT", "RATE_WINDOW", "DB_PATH", "REDIS_URL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "ANTHROPIC_MAX_TOKENS", "ANTHROPIC_TEMPERATURE",
		"GENERATE_TIMEOUT", "ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8003" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.RateLimit != 30 {
		t.Errorf("RateLimit = %d", cfg.RateLimit)
	}
	if cfg.RateWindow != 60*time.Second {
		t.Errorf("RateWindow = %v", cfg.RateWindow)
	}
	if cfg.Anthropic.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Model = %q", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d", cfg.Anthropic.MaxTokens)
	}
	if cfg.DBPath != "" || cfg.RedisURL != "" {
		t.Errorf("storage backends should default to in-memory")
	}
	if cfg.APIBasePath != "/" {
		t.Errorf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "10s")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example , https://b.example")
	t.Setenv("LOG_LEVEL", "WARNING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.RateLimit != 5 || cfg.RateWindow != 10*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.APIToken != "secret" {
		t.Errorf("APIToken = %q", cfg.APIToken)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	// "warning" is normalized to "warn".
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]struct{ key, val string }{
		"bad log level":        {"LOG_LEVEL", "verbose"},
		"zero rate limit":      {"RATE_LIMIT", "0"},
		"bad temperature":      {"ANTHROPIC_TEMPERATURE", "1.5"},
		"zero max tokens":      {"ANTHROPIC_MAX_TOKENS", "0"},
		"negative header size": {"MAX_HEADER_BYTES", "-1"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(c.key, c.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", c.key, c.val)
			}
		})
	}
}

func TestLoad_BadGinModeFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "weird")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"api":      "/api",
		"/api/":    "/api",
		"/api/v1/": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}
