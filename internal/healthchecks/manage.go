// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package healthchecks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"

	"bdd.fi/x/hcmon/internal/optional"
)

// APIKeyHeader carries the project API key on management API requests.
const APIKeyHeader = "X-Api-Key"

// Check is a check as returned by the management API. Read-only API keys
// get neither UUID nor PingURL.
type Check struct {
	Name     string                    `json:"name"`
	Slug     string                    `json:"slug"`
	Tags     string                    `json:"tags"`
	Status   string                    `json:"status"`
	UUID     string                    `json:"uuid"`
	PingURL  string                    `json:"ping_url"`
	NPings   int                       `json:"n_pings"`
	LastPing optional.Optional[string] `json:"last_ping"`
}

// ID returns the check's UUID. When the API omits the uuid field it is
// taken from the last path element of the ping URL.
func (c Check) ID() (string, bool) {
	if len(c.UUID) > 0 {
		return c.UUID, true
	}

	if len(c.PingURL) == 0 {
		return "", false
	}

	u, err := url.Parse(c.PingURL)
	if err != nil {
		return "", false
	}

	id := path.Base(u.Path)
	if id == "/" || id == "." {
		return "", false
	}

	return id, true
}

// Ping is a logged ping of a check, as returned by the management API.
type Ping struct {
	N          int                        `json:"n"`
	Type       string                     `json:"type"`
	Date       string                     `json:"date"`
	Scheme     string                     `json:"scheme"`
	RemoteAddr string                     `json:"remote_addr"`
	Method     string                     `json:"method"`
	UserAgent  string                     `json:"ua"`
	RunID      string                     `json:"rid"`
	Duration   optional.Optional[float64] `json:"duration"`
}

// ManageClient reads checks and pings through the management API.
type ManageClient struct {
	*Client
}

// NewManageClient returns a ManageClient authenticating with the project
// API key token.
func NewManageClient(token string, opts ...Option) (*ManageClient, error) {
	if len(token) == 0 {
		return nil, fmt.Errorf("%w: empty API key", ErrInvalidCredential)
	}

	if strings.IndexFunc(token, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return nil, fmt.Errorf("%w: API key contains whitespace or control characters", ErrInvalidCredential)
	}

	c := newClient(DefaultAPIURL)
	for _, opt := range opts {
		opt(c)
	}

	if c.ReqHeaders == nil {
		c.ReqHeaders = make(map[string]string)
	}
	c.ReqHeaders[APIKeyHeader] = token

	return &ManageClient{Client: c}, nil
}

// Checks returns all checks of the project, in the order the API lists them.
func (c *ManageClient) Checks(ctx context.Context) ([]Check, error) {
	var doc struct {
		Checks []Check `json:"checks"`
	}

	if err := c.get(ctx, &doc, "api", "v3", "checks/"); err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}

	return doc.Checks, nil
}

// Pings returns the logged pings of check id, newest first.
func (c *ManageClient) Pings(ctx context.Context, id string) ([]Ping, error) {
	var doc struct {
		Pings []Ping `json:"pings"`
	}

	if err := c.get(ctx, &doc, "api", "v3", "checks", id, "pings/"); err != nil {
		return nil, fmt.Errorf("list pings of %s: %w", id, err)
	}

	return doc.Pings, nil
}

func (c *ManageClient) get(ctx context.Context, v any, elem ...string) error {
	u, err := c.endpoint(nil, elem...)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, "GET", u, "", nil)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
