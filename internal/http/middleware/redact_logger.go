// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the structured access logger used by
// the router. A WhatsApp bot handles phone numbers in nearly every request
// (webhook form fields, conversation paths, query strings), so the logger
// scrubs obvious PII from request metadata before emitting anything:
//
//   - never logs request or response bodies
//   - redacts phone numbers (including the "whatsapp:+123..." channel form),
//     email addresses, and UUID-like identifiers from path, query, and headers
//   - fully masks credential headers (Authorization, Cookie, Set-Cookie,
//     X-Api-Key, plus any configured extras)
//
// Scrubbing reduces but does not eliminate leak risk; clients should still
// avoid putting PII in query strings where possible.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures extra scrub behavior for RedactingLogger.
//
// MaskHeaders lists additional header names whose values are replaced with
// "[REDACTED]" wholesale. Matching is case-insensitive and merged with the
// built-in credential headers.
type RedactOptions struct {
	MaskHeaders []string
}

// Patterns compiled once at package init.
//
// NOTE: UUIDs are redacted before phone numbers so the loose phone pattern
// cannot match the digit/hyphen runs inside a UUID, and the whatsapp: channel
// form is redacted before bare numbers so the prefix is scrubbed with it.
var (
	uuidRE = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Twilio-style channel address: whatsapp:+34600111222
	waPhoneRE = regexp.MustCompile(`(?i)\bwhatsapp:\+?\d{6,15}\b`)
	// Bare phone numbers: "+1 212-555-1212", "(212) 555-1212", "212 555 1212".
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

func redactPII(s string) string {
	if s == "" {
		return s
	}
	out := uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	out = emailRE.ReplaceAllString(out, "[REDACTED:email]")
	out = waPhoneRE.ReplaceAllString(out, "[REDACTED:phone]")
	out = phoneRE.ReplaceAllString(out, "[REDACTED:phone]")
	return out
}

// RedactingLogger returns a Gin middleware that logs requests and responses
// with sensitive values scrubbed. Like Logger(), it stores a request-scoped
// zerolog.Logger in the Gin context (key "logger") so handler error paths
// keep the correlation ID.
//
// It logs method, scrubbed path and query, status, response size, latency,
// and scrubbed request headers. Level follows the outcome: info by default,
// warn for 4xx, error for 5xx. The raw URL path is scrubbed too (conversation
// routes put the counterpart phone number in the path); the route template
// from c.FullPath() is used when available since it carries no PII.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
		"x-api-key":     {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = redactPII(c.Request.URL.Path)
		}
		safeQuery := redactPII(c.Request.URL.RawQuery)

		// Request-scoped logger for handlers (LoggerFrom), same contract as
		// Logger() but carrying only scrubbed fields.
		rid, _ := c.Get(requestIDKey)
		l := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set("logger", &l)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			val := strings.Join(vv, ", ")
			if _, masked := maskHeaders[strings.ToLower(k)]; masked {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redactPII(val)
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		size := c.Writer.Size()

		reqID := c.Writer.Header().Get("X-Request-ID")
		if reqID == "" {
			reqID = c.GetHeader("X-Request-ID")
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", size).
			Dur("latency", latency).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
