// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"slices"
	"syscall"
)

// Executor spawns a command and waits for it to terminate.
type Executor interface {
	SpawnAndWait(ctx context.Context, cmd Command, stdout, stderr io.Writer) (Outcome, error)
}

// SpawnError is returned when a command could not be started at all.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot start %q: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// RelayedSignals are forwarded to the child while ExecExecutor waits for it.
//
// SIGINT is caught but not forwarded. A terminal sends it to the whole
// foreground process group, which the child is part of, so relaying it
// would deliver every Ctrl-C twice.
var RelayedSignals = []os.Signal{syscall.SIGTERM, syscall.SIGHUP}

var caughtSignals = append([]os.Signal{syscall.SIGINT}, RelayedSignals...)

// ExecExecutor runs commands with os/exec, without a shell. The child
// inherits stdin and the environment.
type ExecExecutor struct{}

func (ExecExecutor) SpawnAndWait(ctx context.Context, cmd Command, stdout, stderr io.Writer) (Outcome, error) {
	c := exec.CommandContext(ctx, cmd.Name(), cmd.Args()...)
	c.Stdin = os.Stdin
	c.Stdout = stdout
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		return Outcome{}, &SpawnError{Name: cmd.Name(), Err: err}
	}

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, caughtSignals...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigC:
				if slices.Contains(RelayedSignals, sig) {
					c.Process.Signal(sig)
				}
			case <-done:
				return
			}
		}
	}()

	err := c.Wait()
	signal.Stop(sigC)
	close(done)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Outcome{}, fmt.Errorf("wait for %q: %w", cmd.Name(), err)
	}

	return classify(c.ProcessState), nil
}

func classify(ps *os.ProcessState) Outcome {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Interrupted(ws.Signal())
	}

	if code := ps.ExitCode(); code >= 0 {
		return Completed(code)
	}

	return Interrupted(0)
}
