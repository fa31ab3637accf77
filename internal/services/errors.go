// Package services implements the message-processing pipeline and the
// tenant/conversation operations around it. This file centralizes the
// service-level error values; translation into HTTP status codes happens at
// the handler layer.
//
// Only ErrRateLimited and ErrTenantNotFound are meant to cross the service
// boundary as distinguishable failures. Generation failures never appear
// here at all: the pipeline absorbs them into fallback text so the
// conversation is never left without a reply.
package services

import "errors"

var (
	// ErrRateLimited is returned by the pipeline when the sliding-window
	// limiter denies the client identity. Recoverable by retrying after the
	// window has drained.
	ErrRateLimited = errors.New("too many requests")

	// ErrTenantNotFound indicates the requested tenant has never been
	// configured and no implicit creation applies (read paths only).
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrEmptyMessage is returned when an inbound message has no content
	// after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrInvalidTenantID is returned when a configuration call carries a
	// blank tenant identifier.
	ErrInvalidTenantID = errors.New("tenant id must not be empty")
)
