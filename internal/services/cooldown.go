// Package services – CooldownService
//
// This file implements the submission cooldown: a minimum time gap
// enforced between consecutive accepted submissions from the same client.
// The marker is a single timestamp in the durable cache; checking it is a
// pure read (repeated checks while a visitor fills a form must never reset
// or extend the window), and only the pipeline writes it, on success.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tbourn/go-leads-backend/internal/cache"
)

// cooldownKey is the durable-cache key holding the last-submission marker.
const cooldownKey = "last_submission_at"

// DefaultCooldownWindow is the minimum gap between accepted submissions.
const DefaultCooldownWindow = 5 * time.Minute

// CooldownStatus is the outcome of a cooldown check.
type CooldownStatus struct {
	InCooldown       bool   `json:"in_cooldown"`
	RemainingSeconds int    `json:"remaining_seconds,omitempty"`
	Message          string `json:"message,omitempty"`
}

// CooldownService reads and writes the last-submission marker.
type CooldownService struct {
	// Cache is the durable store holding the marker. A disabled cache
	// means cooldown cannot be enforced and every check passes.
	Cache cache.Store
	// Window is the cooldown duration; zero falls back to DefaultCooldownWindow.
	Window time.Duration

	// Now is a clock seam for tests; defaults to time.Now.
	Now func() time.Time
}

// NewCooldownService constructs a CooldownService over the durable cache.
func NewCooldownService(durable cache.Store, window time.Duration) *CooldownService {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &CooldownService{Cache: durable, Window: window, Now: time.Now}
}

// Check reports whether the client is inside the cooldown window. A
// window argument <= 0 uses the configured default. Check never writes:
// the marker is only ever set by MarkSubmitted.
func (s *CooldownService) Check(ctx context.Context, window time.Duration) CooldownStatus {
	if window <= 0 {
		window = s.Window
	}

	var markerMillis int64
	if s.Cache == nil || !s.Cache.Get(ctx, cooldownKey, &markerMillis) {
		return CooldownStatus{}
	}

	elapsed := s.Now().UTC().Sub(time.UnixMilli(markerMillis))
	if elapsed >= window {
		return CooldownStatus{}
	}

	remainingMillis := (window - elapsed).Milliseconds()
	remaining := int((remainingMillis + 999) / 1000) // ceil to whole seconds
	return CooldownStatus{
		InCooldown:       true,
		RemainingSeconds: remaining,
		Message:          fmt.Sprintf("Please wait %d seconds before submitting another enquiry.", remaining),
	}
}

// MarkSubmitted records the current time as the last accepted submission.
// Called by the pipeline only after a successful remote lead creation. The
// marker is stored without expiry so checks against a wider-than-default
// window still see it.
func (s *CooldownService) MarkSubmitted(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	s.Cache.Set(ctx, cooldownKey, s.Now().UTC().UnixMilli(), 0)
}
