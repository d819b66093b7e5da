// Package domain defines the core models shared across the repository,
// service, and transport layers. This file holds the tracking types captured
// per visitor and merged into the lead payload at submission time.
package domain

import "time"

// TrackingSnapshot is the IP-derived geolocation identity of a visitor,
// normalized from whichever geolocation provider answered. A snapshot with
// an empty IP is "valid but unknown": callers must treat it as usable and
// never as an error.
type TrackingSnapshot struct {
	IP          string    `json:"ip"`
	City        string    `json:"city"`
	Region      string    `json:"region"`
	Country     string    `json:"country"`
	CountryCode string    `json:"country_code"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timezone    string    `json:"timezone"`
	ISP         string    `json:"isp"`
	CapturedAt  time.Time `json:"captured_at"`
}

// Unknown reports whether the snapshot carries no usable identity
// (both providers failed or the visitor could not be resolved).
func (s TrackingSnapshot) Unknown() bool { return s.IP == "" }

// Device classes inferred from the client user-agent string.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// DeviceInfo describes the visitor's device class and browser identity,
// derived purely from the user-agent string. Derivation never fails;
// unrecognized agents yield DeviceDesktop and an empty browser.
type DeviceInfo struct {
	Class          string `json:"class"`
	Browser        string `json:"browser,omitempty"`
	BrowserVersion string `json:"browser_version,omitempty"`
}
