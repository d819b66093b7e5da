// Package domain defines the persistence models for the lead intake
// pipeline. These types are mapped with GORM and form the core data layer
// of the lead backend.
package domain

import (
	"time"
)

// SubmittedContact is the local record of a contact that has already
// submitted a lead. It is the fast-path half of the duplicate guard: one
// copy lives here (same-device repeats), the authoritative copy lives in
// the remote submitted-contacts collection (cross-device repeats).
//
// Fields:
//   - ID: ULID primary key, lexically sortable by submission time.
//   - Mobile: digits-only national phone number (normalized).
//   - Email: trimmed, lower-cased email address (normalized).
//   - SubmittedAt: when the lead was accepted.
//
// Rows are created exactly once per accepted lead, never updated, and only
// removed by the explicit maintenance wipe.
type SubmittedContact struct {
	ID          string    `json:"id"           gorm:"type:char(26);primaryKey"`
	Mobile      string    `json:"mobile"       gorm:"type:varchar(20);not null;index:idx_contact_mobile"`
	Email       string    `json:"email"        gorm:"type:varchar(255);not null;index:idx_contact_email"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`
}

// TableName returns the database table name for SubmittedContact.
func (SubmittedContact) TableName() string { return "submitted_contacts" }

// CacheEntry is one row of the durable key-value cache. Entries are
// namespaced so independent components (cooldown marker, guard state)
// cannot collide, and optionally expire.
//
// Fields:
//   - Namespace / Key: composite primary key.
//   - Value: JSON-encoded payload as written by the cache layer.
//   - CreatedAt: write timestamp.
//   - ExpiresAt: optional expiry; expired rows are deleted lazily on read.
type CacheEntry struct {
	Namespace string     `gorm:"type:varchar(64);primaryKey"`
	Key       string     `gorm:"type:varchar(128);primaryKey"`
	Value     string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt *time.Time `gorm:"index"`
}

// TableName returns the database table name for CacheEntry.
func (CacheEntry) TableName() string { return "cache_entries" }
