// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// SubmittedContact model, the local half of the duplicate guard.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - ContactExists never errors on "no match"; it reports membership flags.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateSubmittedContact(ctx, db, mobile, email, at) -> *domain.SubmittedContact, error
//     Inserts a contact row unless an identical (mobile, email) pair exists;
//     the dedupe-before-append check makes repeated recording idempotent.
//
//   - ContactExists(ctx, db, mobile, email) -> (phoneHit, emailHit bool, error)
//     Tests membership by normalized phone OR normalized email (union match).
//
//   - ListSubmittedContacts(ctx, db) -> []domain.SubmittedContact, error
//     Returns the full local collection, newest first.
//
//   - CountSubmittedContacts / ListSubmittedContactsPage
//     Pagination support for the admin listing endpoint.
//
//   - ClearSubmittedContacts(ctx, db) -> error
//     Maintenance wipe of the local collection (admin/testing only).
//
// This repository is designed to be wrapped by a higher-level service
// (see services.DuplicateGuard) which enforces the local-then-remote
// consultation order and normalization rules.
package repo

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

// newContactID returns a fresh ULID string. ULIDs sort by creation time,
// which keeps the submissions log naturally ordered.
func newContactID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at.UTC()), rand.Reader).String()
}

// CreateSubmittedContact inserts a contact row for the given normalized
// (mobile, email) pair unless an identical pair is already present. The
// pre-insert existence check makes double recording a no-op rather than a
// duplicate row. On success it returns the persisted (or pre-existing) row.
func CreateSubmittedContact(ctx context.Context, db *gorm.DB, mobile, email string, at time.Time) (*domain.SubmittedContact, error) {
	var existing domain.SubmittedContact
	err := db.WithContext(ctx).
		Where("mobile = ? AND email = ?", mobile, email).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	c := &domain.SubmittedContact{
		ID:          newContactID(at),
		Mobile:      mobile,
		Email:       email,
		SubmittedAt: at.UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ContactExists reports whether the normalized mobile or email is already
// present in the local collection. The two flags are independent so callers
// can tell the user which field matched.
func ContactExists(ctx context.Context, db *gorm.DB, mobile, email string) (phoneHit, emailHit bool, err error) {
	var n int64
	if mobile != "" {
		if err = db.WithContext(ctx).
			Model(&domain.SubmittedContact{}).
			Where("mobile = ?", mobile).
			Count(&n).Error; err != nil {
			return false, false, err
		}
		phoneHit = n > 0
	}
	if email != "" {
		if err = db.WithContext(ctx).
			Model(&domain.SubmittedContact{}).
			Where("email = ?", email).
			Count(&n).Error; err != nil {
			return false, false, err
		}
		emailHit = n > 0
	}
	return phoneHit, emailHit, nil
}

// ListSubmittedContacts returns the full local collection, most recent
// submissions first. Growth is unbounded by design; the set is only
// cleared by ClearSubmittedContacts.
func ListSubmittedContacts(ctx context.Context, db *gorm.DB) ([]domain.SubmittedContact, error) {
	var out []domain.SubmittedContact
	err := db.WithContext(ctx).
		Order("submitted_at desc").
		Find(&out).Error
	return out, err
}

// CountSubmittedContacts returns the size of the local collection.
func CountSubmittedContacts(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.SubmittedContact{}).
		Count(&n).Error
	return n, err
}

// ListSubmittedContactsPage returns one page of the local collection,
// most recent submissions first.
func ListSubmittedContactsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.SubmittedContact, error) {
	var out []domain.SubmittedContact
	err := db.WithContext(ctx).
		Order("submitted_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ClearSubmittedContacts removes every row from the local collection.
// Maintenance operation only; normal operation never deletes contacts.
func ClearSubmittedContacts(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.SubmittedContact{}).Error
}
