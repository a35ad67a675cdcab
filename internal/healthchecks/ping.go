// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package healthchecks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"bdd.fi/x/hcmon/internal/optional"
)

// PingBodyLimitHeader relays the instance's ping body limit in bytes.
const PingBodyLimitHeader = "Ping-Body-Limit"

// PingClient signals the state of runs of one check to the pinging API.
// https://healthchecks.io/docs/http_api/
type PingClient struct {
	*Client

	// CheckUUID is the check the pings are sent for.
	CheckUUID string

	// RunID, when non-empty, is sent as the 'rid' query parameter so the
	// service can pair start and finish pings of a single run.
	RunID string

	bodyLimit optional.Optional[uint]
}

// NewPingClient returns a PingClient for check, which has to be a UUID.
func NewPingClient(check string, opts ...Option) (*PingClient, error) {
	id, err := uuid.Parse(check)
	if err != nil {
		return nil, fmt.Errorf("%w: check id %q is not a UUID", ErrInvalidCredential, check)
	}

	c := newClient(DefaultPingURL)
	for _, opt := range opts {
		opt(c)
	}

	return &PingClient{Client: c, CheckUUID: id.String()}, nil
}

// NewRunID returns a random UUIDv4 suitable for PingClient.RunID.
func NewRunID() string {
	return uuid.NewString()
}

// PingStart sends a start ping for the check.
func (c *PingClient) PingStart(ctx context.Context) error {
	return c.ping(ctx, "start", nil)
}

// PingSuccess sends a success ping for the check and attaches body as the
// logged context.
func (c *PingClient) PingSuccess(ctx context.Context, body io.Reader) error {
	return c.ping(ctx, "", body)
}

// PingFail sends a failure ping for the check and attaches body as the
// logged context.
func (c *PingClient) PingFail(ctx context.Context, body io.Reader) error {
	return c.ping(ctx, "fail", body)
}

func (c *PingClient) ping(ctx context.Context, typePath string, body io.Reader) error {
	var q url.Values
	if len(c.RunID) > 0 {
		q = url.Values{"rid": {c.RunID}}
	}

	u, err := c.endpoint(q, c.CheckUUID, typePath)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, "POST", u, "text/plain", body)
	if err != nil {
		return err
	}

	c.bodyLimitFrom(resp)
	drain(resp)

	return nil
}

// PingBodyLimit returns the largest ping body the instance accepts, as
// reported on the last ping response. Instances that don't report one
// return None.
func (c *PingClient) PingBodyLimit() optional.Optional[uint] {
	return c.bodyLimit
}

func (c *PingClient) bodyLimitFrom(resp *http.Response) {
	strval := resp.Header.Get(PingBodyLimitHeader)
	if len(strval) == 0 {
		return
	}

	// uint32 should be enough for everyone(tm)
	val, err := strconv.ParseUint(strval, 10, 32)
	if err != nil {
		return
	}

	c.bodyLimit = optional.Some(uint(val))
}
