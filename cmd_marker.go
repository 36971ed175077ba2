// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/wbond/pepcheck/pkg/python/pep508"
)

var argparserMarker = &cobra.Command{
	Use:   "marker {[flags]|SUBCOMMAND...}",
	Short: "Work with PEP 508 environment markers",

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	var flags struct {
		EnvironmentFile string
		Set             []string
		Extras          []string
	}
	cmd := &cobra.Command{
		Use:   "eval [flags] MARKER",
		Short: "Evaluate an environment marker, printing \"true\" or \"false\"",
		Long: "Evaluate an environment marker against an environment snapshot.  " +
			"The snapshot starts empty; --environment loads marker variables from " +
			"a YAML file, and --set overrides individual variables.  --extra " +
			"names an extra that is being installed, for markers that test " +
			"`extra == \"...\"`.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			marker, err := pep508.ParseEnvironmentMarker(args[0])
			if err != nil {
				return err
			}

			var env pep508.Environment
			if flags.EnvironmentFile != "" {
				bs, err := os.ReadFile(flags.EnvironmentFile)
				if err != nil {
					return err
				}
				if err := yaml.UnmarshalStrict(bs, &env); err != nil {
					return fmt.Errorf("%s: %w", flags.EnvironmentFile, err)
				}
			}
			for _, setting := range flags.Set {
				name, value, ok := cutString(setting, "=")
				if !ok {
					return fmt.Errorf("--set %q: expected NAME=VALUE", setting)
				}
				if err := env.Set(name, value); err != nil {
					return err
				}
			}
			dlog.Debugf(ctx, "environment: %+v", env)

			var multiValues map[string][]string
			if len(flags.Extras) > 0 {
				multiValues = map[string][]string{"extra": flags.Extras}
			}
			ok, err := marker.CheckWith(env, nil, multiValues)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.EnvironmentFile, "environment", "",
		"YAML file of marker variables, as from `pip inspect`")
	cmd.Flags().StringArrayVar(&flags.Set, "set", nil,
		"Set a marker variable, as NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&flags.Extras, "extra", nil,
		"An extra being installed (repeatable)")
	argparserMarker.AddCommand(cmd)

	argparser.AddCommand(argparserMarker)
}

func cutString(str, sep string) (before, after string, found bool) {
	i := strings.Index(str, sep)
	if i < 0 {
		return str, "", false
	}
	return str[:i], str[i+len(sep):], true
}
