// Package services – DuplicateGuard
//
// This file implements the duplicate guard: the component that decides
// whether a contact fingerprint (normalized phone + email) has already
// submitted a lead. Two independent sources are consulted in order:
//
//  1. the local submitted-contacts collection (fast path, authoritative
//     for repeats from the same installation), then
//  2. the remote submitted-contacts collection (authoritative across
//     devices and sessions).
//
// The two sources are deliberately composed rather than merged: they have
// different lifetimes and different failure modes, and the guard accepts
// eventual consistency between them. A remote transport failure is
// reported as "unknown" (Checked=false, Exists=false) and never as a
// confirmed duplicate, so a down contacts collection cannot block a
// legitimate submission.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-leads-backend/internal/remote"
	"github.com/tbourn/go-leads-backend/internal/repo"
)

// Duplicate sources reported in DuplicateResult.Source.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// User-facing duplicate messages, selected by which field(s) matched.
// The both-match message takes precedence.
const (
	msgBothExist  = "An enquiry with this phone number and email address already exists."
	msgPhoneExist = "An enquiry with this phone number already exists."
	msgEmailExist = "An enquiry with this email address already exists."
)

// LocalContacts is the contract for the local submitted-contacts
// collection required by the guard.
type LocalContacts interface {
	// Exists tests membership by normalized phone OR normalized email.
	Exists(ctx context.Context, mobile, email string) (phoneHit, emailHit bool, err error)

	// Record appends the normalized pair unless it is already present.
	Record(ctx context.Context, mobile, email string, at time.Time) error

	// Clear wipes the collection (maintenance only).
	Clear(ctx context.Context) error
}

// RemoteContacts is the contract for the remote submitted-contacts
// collection required by the guard.
type RemoteContacts interface {
	ContactsByMobile(ctx context.Context, mobile string) ([]remote.Contact, error)
	ContactsByEmail(ctx context.Context, email string) ([]remote.Contact, error)
	CreateContact(ctx context.Context, mobile, email string, submittedAt time.Time) error
}

// CheckOptions selects which sources a duplicate check consults.
// The zero value checks nothing; use DefaultCheckOptions for both.
type CheckOptions struct {
	Local  bool
	Remote bool
}

// DefaultCheckOptions consults both sources, local first.
func DefaultCheckOptions() CheckOptions { return CheckOptions{Local: true, Remote: true} }

// DuplicateResult is the outcome of a duplicate check.
//
// Checked is false when the authoritative remote lookup could not be
// completed (transport failure): the contact is then "unknown", and per
// policy the pipeline proceeds rather than rejecting.
type DuplicateResult struct {
	Exists      bool   `json:"exists"`
	PhoneExists bool   `json:"phone_exists"`
	EmailExists bool   `json:"email_exists"`
	Source      string `json:"source,omitempty"`
	Checked     bool   `json:"checked"`
	Message     string `json:"message,omitempty"`
}

// DuplicateGuard composes the local and remote submitted-contact
// collections into one duplicate decision.
type DuplicateGuard struct {
	Local  LocalContacts
	Remote RemoteContacts
}

// NewDuplicateGuard constructs a guard over the two collections.
func NewDuplicateGuard(local LocalContacts, rem RemoteContacts) *DuplicateGuard {
	return &DuplicateGuard{Local: local, Remote: rem}
}

// duplicateMessage picks the display message for the matched field(s).
func duplicateMessage(phoneHit, emailHit bool) string {
	switch {
	case phoneHit && emailHit:
		return msgBothExist
	case phoneHit:
		return msgPhoneExist
	default:
		return msgEmailExist
	}
}

// CheckDuplicate decides whether the contact is already on file.
//
// The inputs are normalized first, then the enabled sources are consulted
// in order: local (short-circuits on a hit), then remote (one lookup by
// phone, one by email). Membership is a union match: either field alone
// confirms a duplicate.
func (g *DuplicateGuard) CheckDuplicate(ctx context.Context, mobile, email string, opts CheckOptions) DuplicateResult {
	mobile = NormalizeMobile(mobile)
	email = NormalizeEmail(email)

	if opts.Local && g.Local != nil {
		phoneHit, emailHit, err := g.Local.Exists(ctx, mobile, email)
		if err != nil {
			// Local storage trouble degrades to a miss; the remote check
			// below still runs.
			log.Warn().Err(err).Msg("local duplicate check failed")
		} else if phoneHit || emailHit {
			return DuplicateResult{
				Exists:      true,
				PhoneExists: phoneHit,
				EmailExists: emailHit,
				Source:      SourceLocal,
				Checked:     true,
				Message:     duplicateMessage(phoneHit, emailHit),
			}
		}
	}

	if opts.Remote && g.Remote != nil {
		phoneHit, emailHit, err := g.checkRemote(ctx, mobile, email)
		if err != nil {
			log.Warn().Err(err).Msg("remote duplicate check failed, treating contact as unknown")
			return DuplicateResult{Checked: false}
		}
		if phoneHit || emailHit {
			return DuplicateResult{
				Exists:      true,
				PhoneExists: phoneHit,
				EmailExists: emailHit,
				Source:      SourceRemote,
				Checked:     true,
				Message:     duplicateMessage(phoneHit, emailHit),
			}
		}
		return DuplicateResult{Source: SourceRemote, Checked: true}
	}

	return DuplicateResult{Checked: true}
}

// checkRemote runs the two independent remote lookups.
func (g *DuplicateGuard) checkRemote(ctx context.Context, mobile, email string) (phoneHit, emailHit bool, err error) {
	if mobile != "" {
		byPhone, err := g.Remote.ContactsByMobile(ctx, mobile)
		if err != nil {
			return false, false, err
		}
		phoneHit = len(byPhone) > 0
	}
	if email != "" {
		byEmail, err := g.Remote.ContactsByEmail(ctx, email)
		if err != nil {
			return false, false, err
		}
		emailHit = len(byEmail) > 0
	}
	return phoneHit, emailHit, nil
}

// RecordSubmission persists the accepted contact in both collections.
//
// The local write always runs first so the fast path is warm even if the
// remote write fails; a remote failure is logged and absorbed, since a
// later local check will still catch a retry from the same installation.
// The returned error reflects only the local write.
func (g *DuplicateGuard) RecordSubmission(ctx context.Context, mobile, email string) error {
	mobile = NormalizeMobile(mobile)
	email = NormalizeEmail(email)
	now := time.Now().UTC()

	var localErr error
	if g.Local != nil {
		if localErr = g.Local.Record(ctx, mobile, email, now); localErr != nil {
			log.Warn().Err(localErr).Msg("local contact record failed")
		}
	}
	if g.Remote != nil {
		if err := g.Remote.CreateContact(ctx, mobile, email, now); err != nil {
			log.Warn().Err(err).Msg("remote contact record failed, local record still in place")
		}
	}
	return localErr
}

// ClearLocal wipes the local collection. Maintenance operation for
// testing and admin use; the remote collection is never touched.
func (g *DuplicateGuard) ClearLocal(ctx context.Context) error {
	if g.Local == nil {
		return nil
	}
	return g.Local.Clear(ctx)
}

// GormContacts adapts the repository free functions to the LocalContacts
// interface expected by the guard. This keeps the guard decoupled from the
// concrete repo package while reusing existing functions.
type GormContacts struct {
	DB *gorm.DB
}

// Exists proxies repo.ContactExists.
func (c GormContacts) Exists(ctx context.Context, mobile, email string) (bool, bool, error) {
	return repo.ContactExists(ctx, c.DB, mobile, email)
}

// Record proxies repo.CreateSubmittedContact (idempotent append).
func (c GormContacts) Record(ctx context.Context, mobile, email string, at time.Time) error {
	_, err := repo.CreateSubmittedContact(ctx, c.DB, mobile, email, at)
	return err
}

// Clear proxies repo.ClearSubmittedContacts.
func (c GormContacts) Clear(ctx context.Context) error {
	return repo.ClearSubmittedContacts(ctx, c.DB)
}
