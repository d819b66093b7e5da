package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-leads-backend/internal/cache"
)

func newCooldown(t *testing.T, window time.Duration) (*CooldownService, *cache.DurableStore) {
	t.Helper()
	store := cache.NewDurableStore(newTestDB(t), "cooldown")
	if !store.Available() {
		t.Fatalf("durable store probe failed")
	}
	return NewCooldownService(store, window), store
}

func TestCooldown_NoMarkerPasses(t *testing.T) {
	svc, _ := newCooldown(t, 5*time.Minute)

	cs := svc.Check(context.Background(), 0)
	if cs.InCooldown {
		t.Fatalf("fresh client must not be in cooldown: %+v", cs)
	}
}

func TestCooldown_AfterSubmit(t *testing.T) {
	svc, store := newCooldown(t, 5*time.Minute)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return base }
	svc.Now = func() time.Time { return base }

	svc.MarkSubmitted(ctx)

	cs := svc.Check(ctx, 0)
	if !cs.InCooldown {
		t.Fatalf("expected cooldown right after submission")
	}
	if cs.RemainingSeconds != 300 {
		t.Fatalf("remaining = %d, want 300", cs.RemainingSeconds)
	}
	if !strings.Contains(cs.Message, "300 seconds") {
		t.Fatalf("message should carry the remaining time, got %q", cs.Message)
	}
}

func TestCooldown_ChecksNeverExtendTheWindow(t *testing.T) {
	svc, store := newCooldown(t, 5*time.Minute)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	store.Now = func() time.Time { return now }
	svc.Now = func() time.Time { return now }

	svc.MarkSubmitted(ctx)

	// Repeated checks while the clock advances must show a strictly
	// shrinking remainder.
	prev := 301
	for _, offset := range []time.Duration{0, time.Minute, 2 * time.Minute, 4 * time.Minute} {
		now = base.Add(offset)
		cs := svc.Check(ctx, 0)
		if !cs.InCooldown {
			t.Fatalf("offset %v: still inside the window, got %+v", offset, cs)
		}
		if cs.RemainingSeconds >= prev {
			t.Fatalf("offset %v: remaining grew from %d to %d", offset, prev, cs.RemainingSeconds)
		}
		prev = cs.RemainingSeconds
	}

	now = base.Add(5 * time.Minute)
	if cs := svc.Check(ctx, 0); cs.InCooldown {
		t.Fatalf("window elapsed, expected pass, got %+v", cs)
	}
}

func TestCooldown_RemainingRoundsUp(t *testing.T) {
	svc, store := newCooldown(t, 5*time.Minute)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	store.Now = func() time.Time { return now }
	svc.Now = func() time.Time { return now }

	svc.MarkSubmitted(ctx)

	// 100ms short of 4 minutes elapsed: 60.1s left, reported as 61.
	now = base.Add(4*time.Minute - 100*time.Millisecond)
	cs := svc.Check(ctx, 0)
	if cs.RemainingSeconds != 61 {
		t.Fatalf("remaining = %d, want 61 (partial seconds round up)", cs.RemainingSeconds)
	}
}

func TestCooldown_ExplicitWindowOverride(t *testing.T) {
	svc, store := newCooldown(t, 5*time.Minute)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	store.Now = func() time.Time { return now }
	svc.Now = func() time.Time { return now }

	svc.MarkSubmitted(ctx)
	now = base.Add(6 * time.Minute)

	if cs := svc.Check(ctx, 0); cs.InCooldown {
		t.Fatalf("past the default window, expected pass, got %+v", cs)
	}
	// A caller asking about a wider window still sees the old marker.
	cs := svc.Check(ctx, 10*time.Minute)
	if !cs.InCooldown || cs.RemainingSeconds != 240 {
		t.Fatalf("10m window check: got %+v, want 240s remaining", cs)
	}
}

func TestCooldown_NilCachePasses(t *testing.T) {
	svc := NewCooldownService(nil, 0)
	if svc.Window != DefaultCooldownWindow {
		t.Fatalf("zero window must fall back to the default")
	}
	if cs := svc.Check(context.Background(), 0); cs.InCooldown {
		t.Fatalf("without a cache, cooldown cannot be enforced: %+v", cs)
	}
	svc.MarkSubmitted(context.Background()) // must not panic
}

func TestCooldown_MarkerSurvivesStoreReopen(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := cache.NewDurableStore(db, "cooldown")
	first.Now = func() time.Time { return base }
	svc := NewCooldownService(first, 5*time.Minute)
	svc.Now = func() time.Time { return base }
	svc.MarkSubmitted(context.Background())

	// A new store over the same database simulates a process restart.
	second := cache.NewDurableStore(db, "cooldown")
	second.Now = func() time.Time { return base.Add(time.Minute) }
	svc2 := NewCooldownService(second, 5*time.Minute)
	svc2.Now = func() time.Time { return base.Add(time.Minute) }

	cs := svc2.Check(context.Background(), 0)
	if !cs.InCooldown || cs.RemainingSeconds != 240 {
		t.Fatalf("marker must survive a restart, got %+v", cs)
	}
}
