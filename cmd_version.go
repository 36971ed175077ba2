// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/wbond/pepcheck/pkg/python/pep440"
)

var argparserVersion = &cobra.Command{
	Use:   "version {[flags]|SUBCOMMAND...}",
	Short: "Work with PEP 440 versions",

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	argparserVersion.AddCommand(&cobra.Command{
		Use:   "normalize VERSION...",
		Short: "Print versions in PEP 440 canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				ver, err := pep440.ParseVersion(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ver.Normalized())
			}
			return nil
		},
	})

	argparserVersion.AddCommand(&cobra.Command{
		Use:   "compare VERSION_A VERSION_B",
		Short: "Compare two versions, printing \"<\", \"==\", or \">\"",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := pep440.ParseVersion(args[0])
			if err != nil {
				return err
			}
			b, err := pep440.ParseVersion(args[1])
			if err != nil {
				return err
			}
			switch a.Cmp(b) {
			case -1:
				fmt.Fprintln(cmd.OutOrStdout(), "<")
			case 0:
				fmt.Fprintln(cmd.OutOrStdout(), "==")
			case 1:
				fmt.Fprintln(cmd.OutOrStdout(), ">")
			}
			return nil
		},
	})

	argparserVersion.AddCommand(&cobra.Command{
		Use:   "sort [VERSION...]",
		Short: "Sort versions in ascending PEP 440 order",
		Long: "Sort versions in ascending PEP 440 order.  With no arguments, " +
			"versions are read from stdin, one per line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					if line := scanner.Text(); line != "" {
						args = append(args, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return err
				}
				dlog.Debugf(ctx, "read %d versions from stdin", len(args))
			}
			vers := make([]pep440.Version, 0, len(args))
			for _, arg := range args {
				ver, err := pep440.ParseVersion(arg)
				if err != nil {
					return err
				}
				vers = append(vers, ver)
			}
			sort.SliceStable(vers, func(i, j int) bool {
				return vers[i].Cmp(vers[j]) < 0
			})
			for _, ver := range vers {
				fmt.Fprintln(cmd.OutOrStdout(), ver)
			}
			return nil
		},
	})

	argparser.AddCommand(argparserVersion)
}
