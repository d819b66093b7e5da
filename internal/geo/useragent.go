// Package geo implements the tracking data collector. This file holds the
// pure user-agent helpers: device class and browser identity inferred by
// pattern matching. They never fail, never touch the network, and need no
// caching.
package geo

import (
	"regexp"
	"strings"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

// DeviceClass infers mobile/tablet/desktop from the user-agent string.
// Unrecognized or empty agents classify as desktop.
func DeviceClass(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "ipad"),
		strings.Contains(s, "tablet"),
		strings.Contains(s, "kindle"),
		strings.Contains(s, "silk"),
		strings.Contains(s, "android") && !strings.Contains(s, "mobile"):
		return domain.DeviceTablet
	case strings.Contains(s, "mobi"),
		strings.Contains(s, "iphone"),
		strings.Contains(s, "ipod"),
		strings.Contains(s, "android"),
		strings.Contains(s, "blackberry"),
		strings.Contains(s, "windows phone"):
		return domain.DeviceMobile
	default:
		return domain.DeviceDesktop
	}
}

// browserPatterns is ordered: more specific tokens first, since Chrome
// advertises Safari and Edge advertises Chrome.
var browserPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Edge", regexp.MustCompile(`(?i)edg(?:e|a|ios)?/([\d.]+)`)},
	{"Opera", regexp.MustCompile(`(?i)(?:opr|opera)/([\d.]+)`)},
	{"Samsung Internet", regexp.MustCompile(`(?i)samsungbrowser/([\d.]+)`)},
	{"Chrome", regexp.MustCompile(`(?i)(?:chrome|crios)/([\d.]+)`)},
	{"Firefox", regexp.MustCompile(`(?i)(?:firefox|fxios)/([\d.]+)`)},
	{"Safari", regexp.MustCompile(`(?i)version/([\d.]+).*safari`)},
	{"Internet Explorer", regexp.MustCompile(`(?i)(?:msie |rv:)([\d.]+)`)},
}

// Browser infers the browser name and version from the user-agent string.
// Unrecognized agents yield empty name and version.
func Browser(ua string) (name, version string) {
	for _, p := range browserPatterns {
		if m := p.re.FindStringSubmatch(ua); m != nil {
			return p.name, m[1]
		}
	}
	return "", ""
}

// Device bundles DeviceClass and Browser into the DeviceInfo value merged
// into lead payloads.
func Device(ua string) domain.DeviceInfo {
	name, version := Browser(ua)
	return domain.DeviceInfo{
		Class:          DeviceClass(ua),
		Browser:        name,
		BrowserVersion: version,
	}
}
