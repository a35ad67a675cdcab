// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD

// Hcctl lists the checks of a https://healthchecks.io project and the
// recent pings of a check.
//
// Usage:
//
//	HEALTHCHECKS_TOKEN=api-key hcctl list
//	HEALTHCHECKS_TOKEN=api-key hcctl pings <check-id>
//
// HEALTHCHECKS_USERAGENT, HEALTHCHECKS_API_URL, HEALTHCHECKS_RETRIES and
// HEALTHCHECKS_TIMEOUT are honored as with monitor.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bdd.fi/x/hcmon/internal/healthchecks"
	"bdd.fi/x/hcmon/internal/settings"
)

const Name = "hcctl"

var errMissingSubcommand = errors.New("missing subcommand")

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(time.Now)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", Name, err)
		return 1
	}

	return 0
}

func newRootCmd(now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           Name,
		Short:         "Command-line tool for interacting with a healthchecks.io account",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(cmd.ErrOrStderr())
			cmd.Usage()
			return errMissingSubcommand
		},
	}

	root.AddCommand(newListCmd(now))
	root.AddCommand(newPingsCmd())

	return root
}

// newManageClient resolves settings and builds the management API client.
func newManageClient() (*healthchecks.ManageClient, error) {
	s, err := settings.Load(settings.TokenEnv, settings.APIURLEnv)
	if err != nil {
		return nil, err
	}

	opts := []healthchecks.Option{
		healthchecks.WithBaseURL(s.BaseURL),
		healthchecks.WithRetries(s.Retries),
		healthchecks.WithTimeout(s.Timeout),
	}
	if ua, ok := s.UserAgent.Get(); ok {
		opts = append(opts, healthchecks.WithUserAgent(ua))
	}

	return healthchecks.NewManageClient(s.Credential, opts...)
}
