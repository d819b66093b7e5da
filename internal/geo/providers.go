// Package geo implements the tracking data collector: visitor IP and
// coarse geolocation resolved through an ordered chain of HTTP providers,
// plus pure user-agent helpers for device and browser identity.
//
// This file defines the provider chain. Each provider fetches its own wire
// shape and normalizes it into domain.TrackingSnapshot, so the collector
// never sees provider-specific fields. The chain is deliberately a plain
// ordered slice tried sequentially; with two providers there is nothing a
// registry would buy.
package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

// json is the codec used for provider responses.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// titleCaser normalizes provider-supplied place names ("new delhi" and
// "NEW DELHI" both become "New Delhi").
var titleCaser = cases.Title(language.Und)

// Provider resolves the caller's public identity into the common snapshot
// shape. Implementations must honor ctx for cancellation and timeouts and
// must return an error (never a partial snapshot) when the lookup fails.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (domain.TrackingSnapshot, error)
}

// errProviderFailed wraps provider-side error payloads (as opposed to
// transport failures) so logs can tell the two apart.
var errProviderFailed = errors.New("provider returned error")

// fetchJSON issues the GET and decodes the body into out.
func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// PrimaryProvider speaks the ipapi.co response shape: snake_case fields
// plus an explicit boolean "error" field with a "reason" on failure.
type PrimaryProvider struct {
	URL    string
	Client *http.Client
}

// Name identifies the provider in logs.
func (p *PrimaryProvider) Name() string { return "primary" }

// Fetch resolves the visitor through the primary provider and normalizes
// the response. A payload with error=true or an empty IP counts as failure
// so the collector falls through to the next provider.
func (p *PrimaryProvider) Fetch(ctx context.Context) (domain.TrackingSnapshot, error) {
	var raw struct {
		Error       bool    `json:"error"`
		Reason      string  `json:"reason"`
		IP          string  `json:"ip"`
		City        string  `json:"city"`
		Region      string  `json:"region"`
		CountryName string  `json:"country_name"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Timezone    string  `json:"timezone"`
		Org         string  `json:"org"`
	}
	if err := fetchJSON(ctx, p.Client, p.URL, &raw); err != nil {
		return domain.TrackingSnapshot{}, err
	}
	if raw.Error {
		return domain.TrackingSnapshot{}, fmt.Errorf("%w: %s", errProviderFailed, raw.Reason)
	}
	if raw.IP == "" {
		return domain.TrackingSnapshot{}, fmt.Errorf("%w: empty ip", errProviderFailed)
	}
	return domain.TrackingSnapshot{
		IP:          raw.IP,
		City:        titleCaser.String(raw.City),
		Region:      titleCaser.String(raw.Region),
		Country:     raw.CountryName,
		CountryCode: raw.CountryCode,
		Latitude:    raw.Latitude,
		Longitude:   raw.Longitude,
		Timezone:    raw.Timezone,
		ISP:         raw.Org,
	}, nil
}

// FallbackProvider speaks the ip-api.com response shape: camelCase fields
// with a "status" discriminator and the IP under "query".
type FallbackProvider struct {
	URL    string
	Client *http.Client
}

// Name identifies the provider in logs.
func (p *FallbackProvider) Name() string { return "fallback" }

// Fetch resolves the visitor through the fallback provider and normalizes
// the response into the same snapshot shape as the primary.
func (p *FallbackProvider) Fetch(ctx context.Context) (domain.TrackingSnapshot, error) {
	var raw struct {
		Status      string  `json:"status"`
		Message     string  `json:"message"`
		Query       string  `json:"query"`
		City        string  `json:"city"`
		RegionName  string  `json:"regionName"`
		Country     string  `json:"country"`
		CountryCode string  `json:"countryCode"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
		Timezone    string  `json:"timezone"`
		ISP         string  `json:"isp"`
	}
	if err := fetchJSON(ctx, p.Client, p.URL, &raw); err != nil {
		return domain.TrackingSnapshot{}, err
	}
	if raw.Status != "success" {
		return domain.TrackingSnapshot{}, fmt.Errorf("%w: %s", errProviderFailed, raw.Message)
	}
	if raw.Query == "" {
		return domain.TrackingSnapshot{}, fmt.Errorf("%w: empty ip", errProviderFailed)
	}
	return domain.TrackingSnapshot{
		IP:          raw.Query,
		City:        titleCaser.String(raw.City),
		Region:      titleCaser.String(raw.RegionName),
		Country:     raw.Country,
		CountryCode: raw.CountryCode,
		Latitude:    raw.Lat,
		Longitude:   raw.Lon,
		Timezone:    raw.Timezone,
		ISP:         raw.ISP,
	}, nil
}
