// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

// Command pepcheck parses and evaluates the version, version-specifier, and
// environment-marker syntaxes from the Python packaging PEPs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var argparser = &cobra.Command{
	Use:   "pepcheck {[flags]|SUBCOMMAND...}",
	Short: "Evaluate Python packaging versions, specifiers, and markers",

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true,
}

func main() {
	ctx := context.Background()

	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
