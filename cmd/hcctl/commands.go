// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD
package main

import (
	"time"

	"github.com/spf13/cobra"

	"bdd.fi/x/hcmon/internal/inspect"
)

func newListCmd(now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checks associated with an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newManageClient()
			if err != nil {
				return err
			}

			return inspect.ListChecks(cmd.Context(), client, cmd.OutOrStdout(), now())
		},
	}
}

func newPingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pings <check-id>",
		Short: "Get logged pings for a given check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newManageClient()
			if err != nil {
				return err
			}

			return inspect.ListPings(cmd.Context(), client, args[0], cmd.OutOrStdout())
		},
	}
}
