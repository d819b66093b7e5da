// Tracking HTTP handlers.
//
// This file exposes the visitor tracking snapshot:
//   - GET /tracking/snapshot  (cached geolocation + device info)
//
// The snapshot endpoint never fails: when every provider is down it returns
// an all-unknown snapshot, so frontends can render whatever fields arrive
// without a separate error path.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-leads-backend/internal/domain"
	"github.com/tbourn/go-leads-backend/internal/geo"
)

// TrackingService defines the snapshot operation consumed by HTTP handlers.
type TrackingService interface {
	// Snapshot returns the cached or freshly collected tracking snapshot.
	Snapshot(ctx context.Context, force bool) domain.TrackingSnapshot
}

// TrackingResponse pairs the geolocation snapshot with device info derived
// from the caller's user agent.
type TrackingResponse struct {
	Snapshot domain.TrackingSnapshot `json:"snapshot"`
	Device   *domain.DeviceInfo      `json:"device,omitempty"`
	// Known is false when every geolocation provider failed and the
	// snapshot carries no identity fields.
	Known bool `json:"known"`
}

// GetSnapshot godoc
// @ID          getTrackingSnapshot
// @Summary     Get the visitor tracking snapshot
// @Description Returns the cached geolocation snapshot (collected via the provider chain) and device info parsed from the User-Agent header. Always 200; unknown fields are empty.
// @Tags        Tracking
// @Produce     json
//
// @Param       force  query  bool  false  "Bypass the cached snapshot and query providers again"
//
// @Success     200  {object}  handlers.TrackingResponse
// @Router      /tracking/snapshot [get]
func (h *Handlers) GetSnapshot(c *gin.Context) {
	force := c.Query("force") == "true" || c.Query("force") == "1"

	var snap domain.TrackingSnapshot
	if h.trackSvc != nil {
		snap = h.trackSvc.Snapshot(c.Request.Context(), force)
	}

	resp := TrackingResponse{Snapshot: snap, Known: !snap.Unknown()}
	if ua := c.Request.UserAgent(); ua != "" {
		d := geo.Device(ua)
		resp.Device = &d
	}
	ok(c, http.StatusOK, resp)
}
