// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD

// Package inspect renders the checks of a project and the logged pings of a
// check as terminal tables.
package inspect

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"bdd.fi/x/hcmon/internal/healthchecks"
)

// MaxPings is the number of most recent pings ListPings shows.
const MaxPings = 10

// Placeholder fills cells with no value.
const Placeholder = "-"

var (
	CheckHeader = []string{"ID", "Name", "Last Ping"}
	PingHeader  = []string{"Number", "Time", "Type", "Duration"}
)

// Source fetches checks and pings, in the order the service returns them.
type Source interface {
	Checks(ctx context.Context) ([]healthchecks.Check, error)
	Pings(ctx context.Context, checkID string) ([]healthchecks.Ping, error)
}

// TimestampError is returned for a timestamp that is not RFC 3339. The
// service always sends well-formed timestamps, so the whole listing fails.
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &TimestampError{Value: s, Err: err}
	}

	return t, nil
}

// ListChecks fetches all checks from src and writes them as a table to w.
// Ages are relative to now.
func ListChecks(ctx context.Context, src Source, w io.Writer, now time.Time) error {
	checks, err := src.Checks(ctx)
	if err != nil {
		return err
	}

	rows, err := CheckRows(checks, now)
	if err != nil {
		return err
	}

	render(w, CheckHeader, rows)

	return nil
}

// ListPings fetches the pings of check id from src and writes the MaxPings
// most recent as a table to w.
func ListPings(ctx context.Context, src Source, id string, w io.Writer) error {
	pings, err := src.Pings(ctx, id)
	if err != nil {
		return err
	}

	rows, err := PingRows(pings)
	if err != nil {
		return err
	}

	render(w, PingHeader, rows)

	return nil
}

// CheckRows returns one ID, Name, Last Ping row per check.
func CheckRows(checks []healthchecks.Check, now time.Time) ([][]string, error) {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		age := Placeholder
		if last, ok := c.LastPing.Get(); ok {
			t, err := parseTimestamp(last)
			if err != nil {
				return nil, fmt.Errorf("check %q: %w", c.Name, err)
			}
			age = Age(now.Sub(t))
		}

		id, ok := c.ID()
		if !ok {
			id = Placeholder
		}

		rows = append(rows, []string{id, c.Name, age})
	}

	return rows, nil
}

// Age renders the time since a ping. The minute count is the total number
// of minutes, not the remainder after the hours: 90 minutes is
// "1 hour(s) and 90 minute(s) ago". Existing output is kept this way.
// Pings from the future, due to clock skew, are 0 minutes old.
func Age(d time.Duration) string {
	d = max(d, 0)
	return fmt.Sprintf("%d hour(s) and %d minute(s) ago", int64(d.Hours()), int64(d.Minutes()))
}

// PingRows returns one Number, Time, Type, Duration row for each of the
// first MaxPings pings.
func PingRows(pings []healthchecks.Ping) ([][]string, error) {
	pings = pings[:min(len(pings), MaxPings)]

	rows := make([][]string, 0, len(pings))
	for _, p := range pings {
		t, err := parseTimestamp(p.Date)
		if err != nil {
			return nil, fmt.Errorf("ping #%d: %w", p.N, err)
		}

		duration := ""
		if d, ok := p.Duration.Get(); ok {
			duration = fmt.Sprintf("%.3f sec", d)
		}

		rows = append(rows, []string{fmt.Sprintf("#%d", p.N), PingTime(t), p.Type, duration})
	}

	return rows, nil
}

// PingTime renders t in UTC as "day/month hour:minute" without zero padding.
func PingTime(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d/%d %d:%d", t.Day(), int(t.Month()), t.Hour(), t.Minute())
}

func render(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetRowLine(false)
	table.SetHeaderLine(true)
	table.SetColumnSeparator("|")
	table.SetCenterSeparator("+")
	table.AppendBulk(rows)
	table.Render()
}
