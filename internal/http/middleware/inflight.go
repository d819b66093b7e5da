// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements InFlightGuard, a per-client single-flight gate for the
// submission endpoint. A visitor double-clicking the submit button fires two
// near-simultaneous POSTs; the cooldown cannot catch the second one because
// the first has not been accepted yet. The guard closes that gap: while one
// submission from a client is being processed, any further submission from
// the same client is rejected immediately with 429.
//
// Design goals:
//   - Zero persistence: the gate is process-local and clears itself when the
//     first request completes.
//   - Narrow scope: install only on the submission route, not globally.
//   - Pluggable identity, shared with the rate limiter (client IP by default).
package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// InFlightGuard tracks which client keys currently have a submission being
// processed. Safe for concurrent use.
type InFlightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
	keyFn  keyFunc
}

// NewInFlightGuard constructs a guard keyed by keyFn.
func NewInFlightGuard(keyFn keyFunc) *InFlightGuard {
	return &InFlightGuard{
		active: make(map[string]struct{}),
		keyFn:  keyFn,
	}
}

// tryAcquire marks key as in flight and reports whether it was free.
func (g *InFlightGuard) tryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// release clears the in-flight mark for key.
func (g *InFlightGuard) release(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}

// Handler returns a Gin middleware that admits at most one concurrent
// request per client key.
//
// Behavior:
//   - First request for a key proceeds; the key is released when the
//     handler chain finishes (including on panic, via defer).
//   - A second request for the same key while the first is still running
//     is rejected with 429 and a compact JSON body.
//
// The middleware emits:
//
//	HTTP/1.1 429 Too Many Requests
//	{
//	  "request_id": "<uuid>",
//	  "code":       "request_in_flight",
//	  "message":    "a submission from this client is already being processed"
//	}
func (g *InFlightGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := g.keyFn(c)
		if !g.tryAcquire(key) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "request_in_flight",
				"message":    "a submission from this client is already being processed",
			})
			return
		}
		defer g.release(key)
		c.Next()
	}
}
