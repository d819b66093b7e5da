// Package services defines the business logic for the lead intake
// pipeline: contact normalization, the duplicate guard, the submission
// cooldown, and the pipeline itself. This file centralizes the error
// taxonomy so that every rejection reaches the transport layer as a typed,
// displayable result rather than an exception-like failure.
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import "errors"

// Kind classifies why a submission was rejected. Every Kind is retryable
// or user-correctable in a specific way, which the handler layer maps to
// status codes and the UI maps to inline messages.
type Kind string

const (
	// KindCooldown: rate-limited; retryable after RemainingSeconds.
	KindCooldown Kind = "cooldown"
	// KindValidation: malformed contact fields; user-correctable.
	KindValidation Kind = "validation"
	// KindDuplicate: contact already on file; not retryable with same data.
	KindDuplicate Kind = "duplicate"
	// KindSubmission: remote lead creation failed; retryable.
	KindSubmission Kind = "submission"
)

var (
	// ErrInvalidMobile is returned when a phone number does not normalize
	// to a ten-digit national number.
	ErrInvalidMobile = errors.New("mobile number must be 10 digits")

	// ErrInvalidEmail is returned when an email address fails the shape check.
	ErrInvalidEmail = errors.New("email address is invalid")
)
