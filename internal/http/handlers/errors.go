// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail() helper
// in this package. They give clients a stable, machine-readable taxonomy that
// supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (bad_request, unauthorized, not_found, ...) mirror common
//     HTTP status semantics.
//   - Domain-specific codes (process_failed, configure_failed) are reserved for
//     business logic errors that a status alone cannot convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "too_many_requests",
//	  "message": "rate limit exceeded, try again later"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeProcessFailed    = "process_failed"
	ErrCodeConfigureFailed  = "configure_failed"
	ErrCodeHistoryFailed    = "history_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
