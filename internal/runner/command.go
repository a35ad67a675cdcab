// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package runner

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

var ErrMissingCommand = errors.New("missing command")

// Command is an executable name followed by its arguments.
type Command []string

// Tokenize splits s on single spaces. Tokens are kept verbatim: there is no
// quoting, escaping, or variable expansion. Empty and whitespace-only input
// fails with ErrMissingCommand.
func Tokenize(s string) (Command, error) {
	if len(strings.TrimSpace(s)) == 0 {
		return nil, ErrMissingCommand
	}

	return Command(strings.Split(s, " ")), nil
}

func (c Command) Name() string {
	return c[0]
}

func (c Command) Args() []string {
	return c[1:]
}

func (c Command) String() string {
	return strings.Join(c, " ")
}

type OutcomeKind int

//go:generate go tool github.com/dmarkham/enumer -type OutcomeKind -trimprefix=Outcome

const (
	// OutcomeCompleted is a process that exited on its own with an exit code.
	OutcomeCompleted OutcomeKind = iota
	// OutcomeInterrupted is a process that terminated without a
	// retrievable exit code, e.g. killed by a signal.
	OutcomeInterrupted
)

// Outcome is the result of one command execution.
type Outcome struct {
	Kind OutcomeKind

	// ExitCode is only meaningful for OutcomeCompleted.
	ExitCode int

	// Signal is the terminating signal of an interrupted process, if known.
	Signal syscall.Signal
}

func Completed(code int) Outcome {
	return Outcome{Kind: OutcomeCompleted, ExitCode: code}
}

func Interrupted(sig syscall.Signal) Outcome {
	return Outcome{Kind: OutcomeInterrupted, Signal: sig}
}

// Success reports whether the command completed with exit code 0.
func (o Outcome) Success() bool {
	return o.Kind == OutcomeCompleted && o.ExitCode == 0
}

// ExitStatus returns the status a wrapper process should exit with to mirror
// o: the exit code itself, or 128+signal as shells do.
func (o Outcome) ExitStatus() int {
	if o.Kind == OutcomeCompleted {
		return o.ExitCode
	}

	if o.Signal > 0 {
		return 128 + int(o.Signal)
	}

	return 128
}

func (o Outcome) String() string {
	if o.Kind == OutcomeCompleted {
		return fmt.Sprintf("exited with code %d", o.ExitCode)
	}

	if o.Signal > 0 {
		return fmt.Sprintf("interrupted by %s", o.Signal)
	}

	return "interrupted"
}
