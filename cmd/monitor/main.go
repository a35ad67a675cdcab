// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bdd.fi/x/hcmon/internal/healthchecks"
	"bdd.fi/x/hcmon/internal/runner"
	"bdd.fi/x/hcmon/internal/settings"
)

const Name = "monitor"

// ExitFatal is the exit status for errors of monitor itself, as opposed to
// the exit status of the monitored command.
const ExitFatal = 125

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, runner.ExecExecutor{}))
}

// execute runs the CLI with args and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, x runner.Executor) int {
	var status int

	cmd := newRootCmd(stdout, stderr, x, &status)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", Name, err)
		return ExitFatal
	}

	return status
}

func newRootCmd(stdout, stderr io.Writer, x runner.Executor, status *int) *cobra.Command {
	var (
		cfg     runner.RunConfig
		silent  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           Name + ` [-t] -X "command arg..."`,
		Short:         "Report results of arbitrary commands to healthchecks.io",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(settings.CheckIDEnv, settings.PingURLEnv)
			if err != nil {
				return err
			}

			pinger, err := newPinger(s)
			if err != nil {
				return err
			}

			cfg.QuietErrors = silent
			cfg.Quiet = cfg.Quiet || silent
			cfg.Stdout = stdout
			cfg.Stderr = stderr
			cfg.Logger = newLogger(stderr, verbose).With("rid", pinger.RunID)

			outcome, err := runner.Run(cmd.Context(), cfg, pinger, x)
			if err != nil {
				return err
			}

			*status = outcome.ExitStatus()
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&cfg.Timer, "timer", "t", false, "send a start ping before running the command")
	f.StringVarP(&cfg.Command, "exec", "X", "", "command to execute and monitor")
	f.BoolVar(&cfg.Quiet, "quiet", false, "don't relay stdout of command to terminal")
	f.BoolVar(&silent, "silent", false, "don't relay stdout and stderr of command to terminal")
	f.BoolVar(&cfg.NoOutputInPing, "no-output-in-ping", false, "don't send stdout and stderr with pings")
	f.BoolVarP(&verbose, "verbose", "v", false, "log pings and command execution")
	cmd.MarkFlagRequired("exec")

	return cmd
}

func newPinger(s settings.Settings) (*healthchecks.PingClient, error) {
	opts := []healthchecks.Option{
		healthchecks.WithBaseURL(s.BaseURL),
		healthchecks.WithRetries(s.Retries),
		healthchecks.WithTimeout(s.Timeout),
		healthchecks.WithUserAgent(s.UserAgent.OrElse("")),
	}

	p, err := healthchecks.NewPingClient(s.Credential, opts...)
	if err != nil {
		return nil, err
	}
	p.RunID = healthchecks.NewRunID()

	return p, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
