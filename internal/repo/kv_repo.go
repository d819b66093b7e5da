// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the CacheEntry
// model backing the durable key-value cache.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

// ErrEntryNotFound is returned when a cache entry is absent or expired.
var ErrEntryNotFound = errors.New("cache entry not found")

// UpsertEntry writes (or overwrites) the entry under (namespace, key).
// A nil expiresAt stores the entry without expiry.
func UpsertEntry(ctx context.Context, db *gorm.DB, namespace, key, value string, now time.Time, expiresAt *time.Time) error {
	e := &domain.CacheEntry{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		CreatedAt: now.UTC(),
		ExpiresAt: expiresAt,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			UpdateAll: true,
		}).
		Create(e).Error
}

// GetEntry returns the live entry under (namespace, key). Expired entries
// are deleted as a side effect of the read and reported as ErrEntryNotFound.
func GetEntry(ctx context.Context, db *gorm.DB, namespace, key string, now time.Time) (*domain.CacheEntry, error) {
	var e domain.CacheEntry
	err := db.WithContext(ctx).
		Where("namespace = ? AND key = ?", namespace, key).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	if e.ExpiresAt != nil && !now.Before(*e.ExpiresAt) {
		// Lazy eviction: delete on read once past expiry.
		_ = DeleteEntry(ctx, db, namespace, key)
		return nil, ErrEntryNotFound
	}
	return &e, nil
}

// DeleteEntry removes the entry under (namespace, key). Deleting a missing
// entry is not an error.
func DeleteEntry(ctx context.Context, db *gorm.DB, namespace, key string) error {
	return db.WithContext(ctx).
		Where("namespace = ? AND key = ?", namespace, key).
		Delete(&domain.CacheEntry{}).Error
}

// DeleteNamespace removes every entry under the namespace.
func DeleteNamespace(ctx context.Context, db *gorm.DB, namespace string) error {
	return db.WithContext(ctx).
		Where("namespace = ?", namespace).
		Delete(&domain.CacheEntry{}).Error
}
