package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUpsertEntry_OverwritesExisting(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := UpsertEntry(ctx, db, "ns", "k", `"v1"`, now, nil); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := UpsertEntry(ctx, db, "ns", "k", `"v2"`, now, nil); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	e, err := GetEntry(ctx, db, "ns", "k", now)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Value != `"v2"` {
		t.Fatalf("expected overwrite, got %q", e.Value)
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetEntry(context.Background(), db, "ns", "missing", time.Now())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestGetEntry_ExpiredDeletedOnRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(time.Minute)

	if err := UpsertEntry(ctx, db, "ns", "k", `"v"`, now, &exp); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Exactly at expiry counts as expired.
	if _, err := GetEntry(ctx, db, "ns", "k", exp); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected expiry at boundary, got %v", err)
	}
	// Row must be gone even for a read with an earlier clock.
	if _, err := GetEntry(ctx, db, "ns", "k", now); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected lazy deletion, got %v", err)
	}
}

func TestDeleteNamespace_ScopedToNamespace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_ = UpsertEntry(ctx, db, "a", "k", `1`, now, nil)
	_ = UpsertEntry(ctx, db, "b", "k", `2`, now, nil)

	if err := DeleteNamespace(ctx, db, "a"); err != nil {
		t.Fatalf("delete namespace: %v", err)
	}
	if _, err := GetEntry(ctx, db, "a", "k", now); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("namespace a should be empty, got %v", err)
	}
	if _, err := GetEntry(ctx, db, "b", "k", now); err != nil {
		t.Fatalf("namespace b must survive, got %v", err)
	}
}
