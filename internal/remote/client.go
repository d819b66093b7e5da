// Package remote implements the HTTP client for the remote store backing
// the lead pipeline: the lead collection (write target for accepted
// submissions) and the submitted-contacts collection (authoritative half
// of the duplicate guard, shared across devices and sessions).
//
// The store is an opaque REST key-collection service; this client only
// knows the two collections' shapes:
//
//	POST /leads                          -> created lead with assigned id
//	GET  /submittedContacts?mobile=X     -> array (empty = no match)
//	GET  /submittedContacts?email=Y      -> array (empty = no match)
//	POST /submittedContacts              -> created contact record
//
// Transport failures are returned as plain errors; callers decide whether
// a failed call is fatal (lead creation) or degradable (contact lookups).
package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

// json is the codec used for request and response bodies.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout bounds every remote-store call when no timeout is
// configured explicitly.
const DefaultTimeout = 15 * time.Second

// Contact is one row of the remote submitted-contacts collection.
type Contact struct {
	ID          string    `json:"id,omitempty"`
	Mobile      string    `json:"mobile"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Client talks to the remote store. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the store at baseURL. A timeout <= 0
// falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues the request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("remote store: %s %s returned %d", req.Method, req.URL.Path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// post marshals body and issues a POST to path, decoding into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// get issues a GET to path with the given query, decoding into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// CreateLead writes the lead payload and returns the stored record with
// its assigned id.
func (c *Client) CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	var created domain.Lead
	if err := c.post(ctx, "/leads", lead, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ContactsByMobile returns the submitted-contact rows matching the
// normalized mobile number. An empty slice means no match.
func (c *Client) ContactsByMobile(ctx context.Context, mobile string) ([]Contact, error) {
	var out []Contact
	err := c.get(ctx, "/submittedContacts", url.Values{"mobile": {mobile}}, &out)
	return out, err
}

// ContactsByEmail returns the submitted-contact rows matching the
// normalized email. An empty slice means no match.
func (c *Client) ContactsByEmail(ctx context.Context, email string) ([]Contact, error) {
	var out []Contact
	err := c.get(ctx, "/submittedContacts", url.Values{"email": {email}}, &out)
	return out, err
}

// CreateContact records the normalized pair in the remote collection.
func (c *Client) CreateContact(ctx context.Context, mobile, email string, submittedAt time.Time) error {
	return c.post(ctx, "/submittedContacts", Contact{
		Mobile:      mobile,
		Email:       email,
		SubmittedAt: submittedAt.UTC(),
	}, nil)
}
