// Package geo implements the tracking data collector. This file holds the
// Collector, which answers "who is this visitor" from the session cache
// when possible and from the provider chain otherwise.
//
// Failure semantics: provider trouble degrades to an all-unknown snapshot.
// The collector never returns an error; tracking data is merged into lead
// payloads opportunistically and must never block a submission.
package geo

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-leads-backend/internal/cache"
	"github.com/tbourn/go-leads-backend/internal/domain"
)

// snapshotKey is the session-cache key under which the current visitor's
// snapshot is stored.
const snapshotKey = "tracking:snapshot"

// DefaultMaxAge bounds how long a cached snapshot may be served.
const DefaultMaxAge = 60 * time.Minute

// Collector resolves and caches visitor tracking snapshots.
//
// Providers are tried in order until one succeeds; with the standard
// configuration that is the primary geolocation provider followed by
// exactly one fallback. Snapshots with a usable IP are cached in the
// session store for MaxAge.
type Collector struct {
	// Providers is the ordered chain; the zero-length chain yields
	// all-unknown snapshots.
	Providers []Provider
	// Cache is the session-scoped store holding the current snapshot.
	Cache cache.Store
	// MaxAge bounds snapshot reuse; zero falls back to DefaultMaxAge.
	MaxAge time.Duration

	// Now is a clock seam for tests; defaults to time.Now.
	Now func() time.Time
}

// NewCollector wires the standard two-provider chain. The shared client
// carries the per-call timeout required for geolocation lookups.
func NewCollector(primaryURL, fallbackURL string, timeout time.Duration, session cache.Store) *Collector {
	client := &http.Client{Timeout: timeout}
	return &Collector{
		Providers: []Provider{
			&PrimaryProvider{URL: primaryURL, Client: client},
			&FallbackProvider{URL: fallbackURL, Client: client},
		},
		Cache:  session,
		MaxAge: DefaultMaxAge,
		Now:    time.Now,
	}
}

// Snapshot returns the visitor's tracking snapshot.
//
// Unless force is set, a cached snapshot younger than MaxAge is returned
// without any network call. Otherwise the provider chain is walked in
// order; the first usable result is cached and returned. When every
// provider fails the returned snapshot is valid-but-unknown (empty IP)
// and is not cached, so the next call retries the chain.
func (c *Collector) Snapshot(ctx context.Context, force bool) domain.TrackingSnapshot {
	maxAge := c.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	if !force && c.Cache != nil {
		var cached domain.TrackingSnapshot
		if c.Cache.Get(ctx, snapshotKey, &cached) && !cached.Unknown() {
			return cached
		}
	}

	now := c.Now().UTC()
	for _, p := range c.Providers {
		snap, err := p.Fetch(ctx)
		if err != nil {
			log.Debug().Err(err).Str("provider", p.Name()).Msg("geolocation lookup failed")
			continue
		}
		snap.CapturedAt = now
		if c.Cache != nil && snap.IP != "" {
			c.Cache.Set(ctx, snapshotKey, snap, maxAge)
		}
		return snap
	}

	log.Warn().Msg("all geolocation providers failed, proceeding with unknown tracking data")
	return domain.TrackingSnapshot{CapturedAt: now}
}
