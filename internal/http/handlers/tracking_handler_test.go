package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

func TestGetSnapshot_KnownLocation(t *testing.T) {
	track := &fakeTrackSvc{snap: domain.TrackingSnapshot{
		IP:         "203.0.113.9",
		City:       "Pune",
		Country:    "India",
		CapturedAt: time.Now().UTC(),
	}}
	h := New(&fakeLeadSvc{}, &fakeDupSvc{}, &fakeCooldownSvc{}, track, nil)
	r := newTestRouter(t, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking/snapshot", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp TrackingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !resp.Known || resp.Snapshot.City != "Pune" {
		t.Fatalf("unexpected snapshot: %+v", resp)
	}
	if resp.Device == nil || resp.Device.Class != domain.DeviceMobile {
		t.Fatalf("device info missing or wrong: %+v", resp.Device)
	}
	if track.gotForce {
		t.Fatalf("plain GET must not force a refresh")
	}
}

func TestGetSnapshot_ForceParam(t *testing.T) {
	track := &fakeTrackSvc{}
	h := New(&fakeLeadSvc{}, &fakeDupSvc{}, &fakeCooldownSvc{}, track, nil)
	r := newTestRouter(t, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tracking/snapshot?force=true", nil))
	if !track.gotForce {
		t.Fatalf("force=true must bypass the cache")
	}
}

func TestGetSnapshot_UnknownStillOK(t *testing.T) {
	// All providers down: the endpoint still answers 200 with Known=false.
	track := &fakeTrackSvc{snap: domain.TrackingSnapshot{CapturedAt: time.Now().UTC()}}
	h := New(&fakeLeadSvc{}, &fakeDupSvc{}, &fakeCooldownSvc{}, track, nil)
	r := newTestRouter(t, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking/snapshot", nil)
	req.Header.Del("User-Agent")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp TrackingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Known {
		t.Fatalf("unknown snapshot must report known=false: %+v", resp)
	}
}
