// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package runner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdd.fi/x/hcmon/internal/optional"
	. "bdd.fi/x/hcmon/internal/runner"
)

// calls records pinger and executor calls in the order they happen.
type calls []string

type fakePinger struct {
	log      *calls
	startErr error
	pingErr  error
	bodies   []string
	limit    optional.Optional[uint]
}

func (f *fakePinger) PingBodyLimit() optional.Optional[uint] {
	return f.limit
}

func (f *fakePinger) PingStart(context.Context) error {
	*f.log = append(*f.log, "start")
	return f.startErr
}

func (f *fakePinger) PingSuccess(_ context.Context, body io.Reader) error {
	return f.report("success", body)
}

func (f *fakePinger) PingFail(_ context.Context, body io.Reader) error {
	return f.report("fail", body)
}

func (f *fakePinger) report(name string, body io.Reader) error {
	*f.log = append(*f.log, name)
	b, _ := io.ReadAll(body)
	f.bodies = append(f.bodies, string(b))
	return f.pingErr
}

type fakeExecutor struct {
	log     *calls
	outcome Outcome
	err     error
	output  string
	got     Command
}

func (f *fakeExecutor) SpawnAndWait(_ context.Context, cmd Command, stdout, stderr io.Writer) (Outcome, error) {
	*f.log = append(*f.log, "spawn")
	f.got = cmd
	if f.err != nil {
		return Outcome{}, f.err
	}
	io.WriteString(stdout, f.output)
	return f.outcome, nil
}

func setup(outcome Outcome) (*calls, *fakePinger, *fakeExecutor) {
	log := &calls{}
	return log, &fakePinger{log: log}, &fakeExecutor{log: log, outcome: outcome}
}

func testConfig(cmd string, timer bool) RunConfig {
	return RunConfig{
		Command: cmd,
		Timer:   timer,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{in: "true", want: Command{"true"}},
		{in: "ls -l /tmp", want: Command{"ls", "-l", "/tmp"}},
		{in: `echo "a b"`, want: Command{"echo", `"a`, `b"`}},
		{in: "echo $HOME", want: Command{"echo", "$HOME"}},
		{in: "a  b", want: Command{"a", "", "b"}},
	}

	for _, tc := range tests {
		got, err := Tokenize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	for _, in := range []string{"x", "backup --full /srv", "a=b c=d e"} {
		cmd, err := Tokenize(in)
		require.NoError(t, err)
		assert.Equal(t, in, cmd.String())
		assert.Equal(t, in, strings.Join(cmd, " "))
	}
}

func TestTokenizeMissingCommand(t *testing.T) {
	for _, in := range []string{"", " ", "   ", "\t \n"} {
		_, err := Tokenize(in)
		assert.ErrorIs(t, err, ErrMissingCommand, "%q", in)
	}
}

func TestRunMissingCommandMakesNoCalls(t *testing.T) {
	log, p, x := setup(Completed(0))

	_, err := Run(context.Background(), testConfig("  ", true), p, x)
	require.ErrorIs(t, err, ErrMissingCommand)
	assert.Empty(t, *log)
}

func TestRunSuccess(t *testing.T) {
	log, p, x := setup(Completed(0))

	outcome, err := Run(context.Background(), testConfig("backup --full", false), p, x)
	require.NoError(t, err)
	assert.Equal(t, Completed(0), outcome)
	assert.Equal(t, calls{"spawn", "success"}, *log)
	assert.Equal(t, Command{"backup", "--full"}, x.got)
}

func TestRunFailureMirrorsExitCode(t *testing.T) {
	for _, code := range []int{1, 2, 42, 255} {
		log, p, x := setup(Completed(code))

		outcome, err := Run(context.Background(), testConfig("false", false), p, x)
		require.NoError(t, err)
		assert.Equal(t, code, outcome.ExitStatus())
		assert.Equal(t, calls{"spawn", "fail"}, *log)
	}
}

func TestRunTimerPingsStartBeforeSpawn(t *testing.T) {
	log, p, x := setup(Completed(0))

	_, err := Run(context.Background(), testConfig("true", true), p, x)
	require.NoError(t, err)
	assert.Equal(t, calls{"start", "spawn", "success"}, *log)
}

func TestRunStartPingFailureSkipsCommand(t *testing.T) {
	log, p, x := setup(Completed(0))
	p.startErr = errors.New("connection refused")

	_, err := Run(context.Background(), testConfig("true", true), p, x)

	var perr *PingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PingTypeStart, perr.Type)
	assert.Equal(t, calls{"start"}, *log)
}

func TestRunInterruptedReportsNothing(t *testing.T) {
	log, p, x := setup(Interrupted(syscall.SIGTERM))

	var stderr bytes.Buffer
	cfg := testConfig("sleep 100", true)
	cfg.Logger = slog.New(slog.NewTextHandler(&stderr, nil))

	outcome, err := Run(context.Background(), cfg, p, x)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInterrupted, outcome.Kind)
	assert.Equal(t, 128+int(syscall.SIGTERM), outcome.ExitStatus())
	assert.Equal(t, calls{"start", "spawn"}, *log)
	assert.Contains(t, stderr.String(), "command interrupted")
}

func TestRunSpawnErrorReportsNothing(t *testing.T) {
	log, p, x := setup(Completed(0))
	x.err = &SpawnError{Name: "nope", Err: errors.New("executable file not found")}

	_, err := Run(context.Background(), testConfig("nope", false), p, x)

	var serr *SpawnError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, calls{"spawn"}, *log)
}

func TestRunReportPingFailure(t *testing.T) {
	_, p, x := setup(Completed(3))
	p.pingErr = errors.New("503 Service Unavailable")

	outcome, err := Run(context.Background(), testConfig("false", false), p, x)

	var perr *PingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PingTypeFail, perr.Type)
	assert.Equal(t, 3, outcome.ExitCode)
}

func TestRunAttachesOutputTail(t *testing.T) {
	_, p, x := setup(Completed(1))
	x.output = "0123456789"

	cfg := testConfig("job", false)
	cfg.TailSize = 40
	_, err := Run(context.Background(), cfg, p, x)
	require.NoError(t, err)

	require.Len(t, p.bodies, 1)
	assert.Equal(t, "0123456789Command exited with code 1\n", p.bodies[0])
}

func TestRunHonorsPingBodyLimit(t *testing.T) {
	_, p, x := setup(Completed(1))
	p.limit = optional.Some[uint](12)
	x.output = "0123456789"

	cfg := testConfig("job", true)
	cfg.TailSize = 40
	_, err := Run(context.Background(), cfg, p, x)
	require.NoError(t, err)

	require.Len(t, p.bodies, 1)
	assert.Equal(t, "with code 1\n", p.bodies[0])
}

func TestRunNoOutputInPing(t *testing.T) {
	_, p, x := setup(Completed(0))
	x.output = "secret"

	cfg := testConfig("job", false)
	cfg.NoOutputInPing = true
	_, err := Run(context.Background(), cfg, p, x)
	require.NoError(t, err)

	require.Len(t, p.bodies, 1)
	assert.Equal(t, "Command exited with code 0\n", p.bodies[0])
}

func TestRunTeesOutput(t *testing.T) {
	_, p, x := setup(Completed(0))
	x.output = "hello\n"

	var stdout bytes.Buffer
	cfg := testConfig("job", false)
	cfg.Stdout = &stdout
	_, err := Run(context.Background(), cfg, p, x)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())

	stdout.Reset()
	cfg.Quiet = true
	_, err = Run(context.Background(), cfg, p, x)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, []string{"start", "success", "fail"}, PingTypeStrings())
	assert.Equal(t, "Interrupted", OutcomeInterrupted.String())

	perr := &PingError{Type: PingTypeSuccess, Err: errors.New("503")}
	assert.Equal(t, "ping success: 503", perr.Error())
}
