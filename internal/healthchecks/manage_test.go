// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package healthchecks_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "bdd.fi/x/hcmon/internal/healthchecks"
)

const testAPIKey = "test-api-key"

func newTestManageClient(t *testing.T, handler http.HandlerFunc) *ManageClient {
	t.Helper()

	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, testAPIKey, r.Header.Get(APIKeyHeader))
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	c, err := NewManageClient(testAPIKey, WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	return c
}

func TestChecks(t *testing.T) {
	c := newTestManageClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/checks/", r.URL.Path)
		w.Write([]byte(`{"checks": [
			{"name": "backup", "ping_url": "https://hc-ping.com/` + TestUUID + `", "last_ping": "2026-10-19T10:00:00+00:00"},
			{"name": "ro", "unique_key": "a6c7b0a8a66bed0df66abfdab3c77736861703ee", "last_ping": null}
		]}`))
	})

	checks, err := c.Checks(context.Background())
	require.NoError(t, err)
	require.Len(t, checks, 2)

	id, ok := checks[0].ID()
	assert.True(t, ok)
	assert.Equal(t, TestUUID, id)
	last, ok := checks[0].LastPing.Get()
	assert.True(t, ok)
	assert.Equal(t, "2026-10-19T10:00:00+00:00", last)

	_, ok = checks[1].ID()
	assert.False(t, ok)
	assert.False(t, checks[1].LastPing.IsDefined())
}

func TestPings(t *testing.T) {
	c := newTestManageClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/checks/"+TestUUID+"/pings/", r.URL.Path)
		w.Write([]byte(`{"pings": [
			{"type": "success", "date": "2026-10-19T10:00:00+00:00", "n": 2, "duration": 1.5},
			{"type": "start", "date": "2026-10-19T09:59:58+00:00", "n": 1}
		]}`))
	})

	pings, err := c.Pings(context.Background(), TestUUID)
	require.NoError(t, err)
	require.Len(t, pings, 2)

	assert.Equal(t, 2, pings[0].N)
	assert.Equal(t, "success", pings[0].Type)
	d, ok := pings[0].Duration.Get()
	assert.True(t, ok)
	assert.Equal(t, 1.5, d)
	assert.False(t, pings[1].Duration.IsDefined())
}

func TestPingsMalformedResponse(t *testing.T) {
	c := newTestManageClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pings": [`))
	})

	_, err := c.Pings(context.Background(), TestUUID)
	assert.Error(t, err)
}

func TestNewManageClientRejectsMalformedKey(t *testing.T) {
	for _, key := range []string{"", "with space", "line\nbreak"} {
		_, err := NewManageClient(key)
		assert.ErrorIs(t, err, ErrInvalidCredential, "key %q", key)
	}
}

func TestCheckID(t *testing.T) {
	tests := map[string]struct {
		check Check
		id    string
		ok    bool
	}{
		"uuid field": {check: Check{UUID: "u"}, id: "u", ok: true},
		"ping url":   {check: Check{PingURL: "https://hc-ping.com/p"}, id: "p", ok: true},
		"neither":    {check: Check{}, ok: false},
		"bare host":  {check: Check{PingURL: "https://hc-ping.com/"}, ok: false},
		"uuid first": {check: Check{UUID: "u", PingURL: "https://hc-ping.com/p"}, id: "u", ok: true},
	}

	for name, tc := range tests {
		id, ok := tc.check.ID()
		assert.Equal(t, tc.ok, ok, name)
		assert.Equal(t, tc.id, id, name)
	}
}
