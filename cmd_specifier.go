// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbond/pepcheck/pkg/python/pep440"
)

var argparserSpecifier = &cobra.Command{
	Use:   "specifier {[flags]|SUBCOMMAND...}",
	Short: "Work with PEP 440 version specifiers",

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	argparserSpecifier.AddCommand(&cobra.Command{
		Use:   "check SPECIFIER VERSION...",
		Short: "Check versions against a specifier",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pep440.ParseSpecifier(args[0])
			if err != nil {
				return err
			}
			for _, arg := range args[1:] {
				ver, err := pep440.ParseVersion(arg)
				if err != nil {
					return err
				}
				ok, err := spec.Check(ver)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", ver, ok)
			}
			return nil
		},
	})

	var selectFlags struct {
		All bool
	}
	cmdSelect := &cobra.Command{
		Use:   "select [flags] SPECIFIER VERSION...",
		Short: "Pick the highest version satisfying a specifier",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pep440.ParseSpecifier(args[0])
			if err != nil {
				return err
			}
			vers := make([]pep440.Version, 0, len(args)-1)
			for _, arg := range args[1:] {
				ver, err := pep440.ParseVersion(arg)
				if err != nil {
					return err
				}
				vers = append(vers, ver)
			}
			matching, err := spec.Filter(vers)
			if err != nil {
				return err
			}
			if len(matching) == 0 {
				return fmt.Errorf("no version satisfies %q", spec)
			}
			if selectFlags.All {
				for _, ver := range matching {
					fmt.Fprintln(cmd.OutOrStdout(), ver)
				}
				return nil
			}
			best := matching[0]
			for _, ver := range matching[1:] {
				if ver.Cmp(best) > 0 {
					best = ver
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), best)
			return nil
		},
	}
	cmdSelect.Flags().BoolVar(&selectFlags.All, "all", false,
		"Print every satisfying version instead of the highest")
	argparserSpecifier.AddCommand(cmdSelect)

	argparser.AddCommand(argparserSpecifier)
}
