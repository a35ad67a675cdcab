// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
//
// Package healthchecks contains the Healthchecks.io HTTP API clients used by
// cmd/monitor (pinging API) and cmd/hcctl (management API).
//
// It is not intended to be used as a standalone client package.
package healthchecks

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"slices"
	"time"
)

const (
	// Default pinging API address.
	DefaultPingURL = "https://hc-ping.com"
	// Default management API address.
	DefaultAPIURL = "https://healthchecks.io"
	// Default HTTP client timeout.
	DefaultTimeout = 5 * time.Second
	// Default number of retries.
	DefaultRetries = 2
)

var (
	ErrNonRetriable      = errors.New("nonretriable error response")
	ErrMaxTries          = errors.New("max tries reached")
	ErrInvalidCredential = errors.New("invalid credential")
	// HTTP response codes eligible for retries.
	RetriableResponseCodes = []int{
		http.StatusRequestTimeout,      // 408
		http.StatusTooManyRequests,     // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout,      // 504
	}
)

// NewDefaultTransportWithResumption returns an http.Transport based on
// http.DefaultTransport with a TLS Client Session Cache, to enable TLS session
// resumption.
func NewDefaultTransportWithResumption() *http.Transport {
	t, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		panic("cannot assert DefaultTranport to *Transport")
	}

	t = t.Clone()
	t.TLSClientConfig = &tls.Config{
		ClientSessionCache: tls.NewLRUClientSessionCache(1),
	}

	return t
}

func retriableResponse(code int) bool {
	return slices.Contains(RetriableResponseCodes, code)
}

// Client holds API endpoint URL, client behavior configuration, and embeds
// http.Client. It is shared by PingClient and ManageClient.
type Client struct {
	// BaseURL is the base URL of the Healthchecks API instance.
	BaseURL string

	// Retries is the number of times a request will be retried if it
	// fails with a timeout or temporary kind of error, or an HTTP status
	// of 408, 429, 500, ... (see RetriableResponseCodes)
	Retries uint

	// UserAgent, when non-empty, is the value of 'User-Agent' HTTP header
	// for outgoing requests.
	UserAgent string

	// Backoff is the duration used as the unit of linear backoff.
	Backoff time.Duration

	// ReqHeaders is a map of additional headers to be sent with every request.
	ReqHeaders map[string]string

	// Embed
	*http.Client
}

func newClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Retries: DefaultRetries,
		Client: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: NewDefaultTransportWithResumption(),
		},
	}
}

// Option configures a Client during PingClient or ManageClient construction.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Empty values are ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if len(u) > 0 {
			c.BaseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header. Empty values keep the default.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

func WithRetries(n uint) Option {
	return func(c *Client) { c.Retries = n }
}

// WithTimeout sets the per request client timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.Backoff = d }
}

// WithHTTPClient replaces the embedded http.Client. Primarily useful for
// testing against httptest servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.Client = hc
		}
	}
}

// Do sends a request to url with simple retry logic and custom User-Agent header
// injection.
//
// Retries:
// The implementation is inspired from Curl's. Request timeouts and temporary
// network level errors will be retried. Responses with status codes 408, 429
// and 5XX are also retried. Unlike Curl's, the backoff implementation is
// linear instead of exponential. First retry waits for 1 second, second one
// waits for 2 seconds, and so on. A canceled ctx stops retrying.
//
// The request body is buffered so that it can be sent multiple times.
func (c *Client) Do(ctx context.Context, method, url string, contentType string, body io.Reader) (resp *http.Response, err error) {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = io.ReadAll(body)
		if err != nil {
			return nil, err
		}
	}

	backoffStep := c.Backoff
	if backoffStep == 0 {
		backoffStep = time.Second
	}

	var tries uint
	for {
		if tries++; tries > 1+c.Retries {
			return nil, fmt.Errorf("%w after try %d. last error: %v", ErrMaxTries, tries-1, err)
		}

		// Linear backoff
		if tries > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(tries-1) * backoffStep):
			}
		}

		var req *http.Request
		req, err = c.newRequest(ctx, method, url, contentType, bodyBytes)
		if err != nil {
			return nil, err
		}

		resp, err = c.Client.Do(req)
		if err != nil {
			// Retry timeout and temporary kind of errors
			var uerr *urlpkg.Error
			if errors.As(err, &uerr) && (uerr.Timeout() || uerr.Temporary()) && ctx.Err() == nil {
				continue
			}

			// non-recoverable
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case retriableResponse(resp.StatusCode):
			drain(resp)
			err = fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		default:
			drain(resp)
			return nil, fmt.Errorf("%w: %s", ErrNonRetriable, resp.Status)
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, url, contentType string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}

	for k, v := range c.ReqHeaders {
		req.Header.Set(k, v)
	}

	if len(contentType) > 0 {
		req.Header.Set("Content-Type", contentType)
	}

	if len(c.UserAgent) > 0 {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	return req, nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// endpoint joins path elements onto BaseURL and attaches query.
func (c *Client) endpoint(query urlpkg.Values, elem ...string) (string, error) {
	u, err := urlpkg.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}

	u.Path, err = urlpkg.JoinPath(u.Path, elem...)
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}
