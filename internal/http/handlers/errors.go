// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (cooldown_active, duplicate_contact, ...) map one-to-one
//     onto the submission pipeline's rejection kinds so form frontends can branch
//     on them directly.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "duplicate_contact",
//	  "message": "An enquiry with this phone number already exists."
//	}
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific: pipeline rejection kinds.
	ErrCodeCooldownActive   = "cooldown_active"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeDuplicateContact = "duplicate_contact"
	ErrCodeSubmitFailed     = "submit_failed"

	ErrCodeClearFailed      = "clear_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
