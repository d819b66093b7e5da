// Package services – LeadService
//
// This file implements the lead submission pipeline: the single
// validate-then-submit operation consumed by every lead-capture form. One
// attempt walks a fixed sequence of stages
//
//	cooldown → validation → duplicate → submit → record
//
// and resolves to exactly one result: an accepted lead id or a typed
// rejection. The ordering is deliberate: cooldown runs before any network
// round-trip so rapid-fire submissions are rejected cheaply, and the
// duplicate check runs before the remote create so a duplicate can never
// produce two lead records. The stages never run concurrently; each
// decision depends on the previous stage's outcome.
//
// The pipeline never propagates errors past its boundary: callers check
// the discriminated SubmitResult, not error values.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-leads-backend/internal/domain"
	"github.com/tbourn/go-leads-backend/internal/geo"
)

// Pipeline stages, used for structured logging of the attempt's path.
const (
	stageCooldown   = "cooldown_check"
	stageValidation = "field_validation"
	stageDuplicate  = "duplicate_check"
	stageSubmit     = "submit"
	stageRecord     = "record"
)

// DuplicateChecker is the duplicate-guard contract required by the pipeline.
type DuplicateChecker interface {
	CheckDuplicate(ctx context.Context, mobile, email string, opts CheckOptions) DuplicateResult
	RecordSubmission(ctx context.Context, mobile, email string) error
}

// CooldownChecker is the cooldown contract required by the pipeline.
type CooldownChecker interface {
	Check(ctx context.Context, window time.Duration) CooldownStatus
	MarkSubmitted(ctx context.Context)
}

// SnapshotProvider supplies the tracking snapshot merged into the lead
// payload. Implementations must degrade to an unknown snapshot, never error.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, force bool) domain.TrackingSnapshot
}

// LeadCreator writes accepted leads to the remote store.
type LeadCreator interface {
	CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
}

// Notifier is told about accepted leads, best-effort.
type Notifier interface {
	LeadAccepted(ctx context.Context, lead *domain.Lead)
}

// SubmitInput is the form payload handed to the pipeline.
type SubmitInput struct {
	Name      string
	Mobile    string
	Email     string
	Message   string
	Source    string
	Extra     map[string]string
	UserAgent string
}

// SubmitResult is the discriminated outcome of one submission attempt:
// either OK with the assigned lead id, or a typed rejection carrying a
// message suitable for direct display.
type SubmitResult struct {
	OK     bool   `json:"ok"`
	LeadID string `json:"lead_id,omitempty"`

	Kind             Kind              `json:"error_kind,omitempty"`
	Message          string            `json:"message,omitempty"`
	RemainingSeconds int               `json:"remaining_seconds,omitempty"`
	PhoneExists      bool              `json:"phone_exists,omitempty"`
	EmailExists      bool              `json:"email_exists,omitempty"`
	FieldErrors      map[string]string `json:"field_errors,omitempty"`
}

// LeadService orchestrates one submission attempt per Submit call.
type LeadService struct {
	Guard     DuplicateChecker
	Cooldown  CooldownChecker
	Collector SnapshotProvider
	Leads     LeadCreator
	Notifier  Notifier

	// DefaultSource labels leads whose input carries no source.
	DefaultSource string
}

// rejected builds a typed failure result.
func rejected(kind Kind, message string) SubmitResult {
	return SubmitResult{Kind: kind, Message: message}
}

// Submit runs the pipeline for one form submission.
//
// Stage outcomes map onto the error taxonomy: cooldown and duplicate are
// terminal before any remote write; validation is terminal before any
// network call beyond tracking; a failed remote create rejects with no
// partial state recorded. Once the lead exists remotely, the recording
// stage (contact stores, cooldown marker, notification) is best-effort
// and never rolls the lead back.
func (s *LeadService) Submit(ctx context.Context, in SubmitInput) SubmitResult {
	// Cooldown: cheap local read, rejects rapid-fire attempts before any
	// network round-trip.
	if cs := s.Cooldown.Check(ctx, 0); cs.InCooldown {
		log.Info().Str("stage", stageCooldown).Int("remaining_s", cs.RemainingSeconds).Msg("submission rejected")
		r := rejected(KindCooldown, cs.Message)
		r.RemainingSeconds = cs.RemainingSeconds
		return r
	}

	// Field validation.
	mobile := NormalizeMobile(in.Mobile)
	email := NormalizeEmail(in.Email)
	fieldErrs := map[string]string{}
	if !ValidMobile(mobile) {
		fieldErrs["mobile"] = ErrInvalidMobile.Error()
	}
	if !ValidEmail(email) {
		fieldErrs["email"] = ErrInvalidEmail.Error()
	}
	if len(fieldErrs) > 0 {
		log.Info().Str("stage", stageValidation).Int("fields", len(fieldErrs)).Msg("submission rejected")
		r := rejected(KindValidation, "Please correct the highlighted fields.")
		r.FieldErrors = fieldErrs
		return r
	}

	// Duplicate check: local fast path, then the authoritative remote
	// collection. An unchecked result (remote down) proceeds by policy.
	dup := s.Guard.CheckDuplicate(ctx, mobile, email, DefaultCheckOptions())
	if dup.Exists {
		log.Info().Str("stage", stageDuplicate).Str("source", dup.Source).Msg("submission rejected")
		r := rejected(KindDuplicate, dup.Message)
		r.PhoneExists = dup.PhoneExists
		r.EmailExists = dup.EmailExists
		return r
	}
	if !dup.Checked {
		log.Warn().Str("stage", stageDuplicate).Msg("duplicate status unknown, proceeding")
	}

	// Submit: merge tracking identity and create the remote lead record.
	lead := &domain.Lead{
		Name:      in.Name,
		Mobile:    mobile,
		Email:     email,
		Message:   in.Message,
		Source:    in.Source,
		Status:    domain.LeadStatusNew,
		Extra:     in.Extra,
		CreatedAt: time.Now().UTC(),
	}
	if lead.Source == "" {
		lead.Source = s.DefaultSource
	}
	if s.Collector != nil {
		snap := s.Collector.Snapshot(ctx, false)
		if !snap.Unknown() {
			lead.Tracking = &snap
		}
	}
	if in.UserAgent != "" {
		d := geo.Device(in.UserAgent)
		lead.Device = &d
	}

	created, err := s.Leads.CreateLead(ctx, lead)
	if err != nil {
		// No partial state: contacts and cooldown are untouched, so an
		// immediate retry is safe.
		log.Error().Err(err).Str("stage", stageSubmit).Msg("remote lead creation failed")
		return rejected(KindSubmission, "We could not submit your enquiry right now. Please try again.")
	}

	// Record: warm both duplicate stores and start the cooldown window.
	// Failures here are logged and absorbed, the lead already exists.
	if err := s.Guard.RecordSubmission(ctx, mobile, email); err != nil {
		log.Warn().Err(err).Str("stage", stageRecord).Msg("contact recording degraded")
	}
	s.Cooldown.MarkSubmitted(ctx)
	if s.Notifier != nil {
		s.Notifier.LeadAccepted(ctx, created)
	}

	log.Info().Str("stage", stageRecord).Str("lead_id", created.ID).Msg("lead accepted")
	return SubmitResult{OK: true, LeadID: created.ID}
}
