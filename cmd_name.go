// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbond/pepcheck/pkg/python/pep503"
)

var argparserName = &cobra.Command{
	Use:   "name {[flags]|SUBCOMMAND...}",
	Short: "Work with Python project names",

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	argparserName.AddCommand(&cobra.Command{
		Use:   "normalize NAME...",
		Short: "Print project names in PEP 503 normalized form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), pep503.NormalizeName(arg))
			}
			return nil
		},
	})

	argparser.AddCommand(argparserName)
}
