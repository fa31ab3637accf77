// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the bearer-token authentication gate that fronts every
// endpoint except the liveness probe and the service banner. The service uses
// a single static API token (API_TOKEN): WhatsApp gateway webhooks and demo
// frontends both authenticate with it.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerToken returns a middleware that rejects requests whose Authorization
// header does not carry the expected bearer token.
//
// Matching is constant-time. An empty expected token disables the gate
// entirely; the caller decides whether running open is acceptable (it is for
// local development, not for production).
//
// Rejections are written through onReject so error envelopes stay consistent
// with the handlers package without an import cycle.
func BearerToken(expected string, onReject func(c *gin.Context, status int, msg string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			onReject(c, http.StatusUnauthorized, "missing or malformed bearer token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(expected)) != 1 {
			onReject(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Next()
	}
}
