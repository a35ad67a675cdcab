// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD

// Package runner executes a command and reports its outcome to a check.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bdd.fi/x/hcmon/internal/optional"
)

// Pinger signals the state of a run to the monitoring service.
type Pinger interface {
	PingStart(ctx context.Context) error
	PingSuccess(ctx context.Context, body io.Reader) error
	PingFail(ctx context.Context, body io.Reader) error
}

// BodyLimiter is implemented by Pingers that learn from the service the
// largest ping body it accepts.
type BodyLimiter interface {
	PingBodyLimit() optional.Optional[uint]
}

// PingType is an enumerator type for PingType* constants.
type PingType int

//go:generate go tool github.com/dmarkham/enumer -type PingType -trimprefix=PingType -transform=kebab
const (
	PingTypeStart PingType = iota
	PingTypeSuccess
	PingTypeFail
)

// PingError is returned when a ping could not be delivered.
type PingError struct {
	Type PingType
	Err  error
}

func (e *PingError) Error() string {
	return fmt.Sprintf("ping %s: %v", e.Type, e.Err)
}

func (e *PingError) Unwrap() error {
	return e.Err
}

// RunConfig sets the behavior of a Run.
type RunConfig struct {
	Command        string // Command string, split by Tokenize
	Timer          bool   // Send a start ping before spawning the command.
	Quiet          bool   // Don't tee command stdout to Stdout.
	QuietErrors    bool   // Don't tee command stderr to Stderr.
	NoOutputInPing bool   // Don't send command output with success and fail pings.

	// TailSize is how many trailing bytes of output are attached to the
	// report ping. Zero means DefaultTailSize. A smaller body limit learned
	// from the start ping takes precedence.
	TailSize int

	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run executes cfg.Command with x and signals its start (optionally) and
// outcome with p.
//
// The returned error is non-nil for ErrMissingCommand, a failed start ping
// (the command is then not run), a *SpawnError, or a failed success/fail
// ping (*PingError). An interrupted command is not an error: it returns an
// OutcomeInterrupted and sends no success or fail ping.
func Run(ctx context.Context, cfg RunConfig, p Pinger, x Executor) (Outcome, error) {
	cmd, err := Tokenize(cfg.Command)
	if err != nil {
		return Outcome{}, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	var stdoutWriter, stderrWriter io.Writer = os.Stdout, os.Stderr
	if cfg.Stdout != nil {
		stdoutWriter = cfg.Stdout
	}
	if cfg.Stderr != nil {
		stderrWriter = cfg.Stderr
	}
	if cfg.Quiet {
		stdoutWriter = io.Discard
	}
	if cfg.QuietErrors {
		stderrWriter = io.Discard
	}

	if cfg.Timer {
		log.Debug("sending start ping")
		if err := p.PingStart(ctx); err != nil {
			return Outcome{}, &PingError{Type: PingTypeStart, Err: err}
		}
	}

	tailSize := cfg.TailSize
	if tailSize <= 0 {
		tailSize = DefaultTailSize
	}
	// The start ping response may carry the instance's body limit.
	if bl, ok := p.(BodyLimiter); ok {
		if limit, ok := bl.PingBodyLimit().Get(); ok && limit > 0 {
			tailSize = min(tailSize, int(limit))
		}
	}
	tail := NewTailBuffer(tailSize)

	var bodyWriter io.Writer = tail
	if cfg.NoOutputInPing {
		bodyWriter = io.Discard
	}

	log.Debug("running command", "command", cmd.String())
	outcome, err := x.SpawnAndWait(ctx, cmd,
		io.MultiWriter(stdoutWriter, bodyWriter),
		io.MultiWriter(stderrWriter, bodyWriter))
	if err != nil {
		return Outcome{}, err
	}

	if outcome.Kind == OutcomeInterrupted {
		log.Warn("command interrupted, not reporting outcome", "command", cmd.Name(), "kind", outcome.Kind, "outcome", outcome.String())
		return outcome, nil
	}

	fmt.Fprintf(tail, "Command exited with code %d\n", outcome.ExitCode)

	pingType, ping := PingTypeSuccess, p.PingSuccess
	if !outcome.Success() {
		pingType, ping = PingTypeFail, p.PingFail
	}

	log.Debug("sending "+pingType.String()+" ping", "exit_code", outcome.ExitCode)
	if err := ping(ctx, tail.Reader()); err != nil {
		return outcome, &PingError{Type: pingType, Err: err}
	}

	return outcome, nil
}
