// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package pep440_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbond/pepcheck/pkg/python/grammar"
	"github.com/wbond/pepcheck/pkg/python/pep440"
)

func TestSpecifierCheck(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		spec    string
		version string
		expect  bool
	}{
		// Ranges.
		{">=1.2,<2.0", "1.2", true},
		{">=1.2,<2.0", "1.9.9", true},
		{">=1.2,<2.0", "2.0", false},
		{">=1.2,<2.0", "1.1", false},
		{">= 1.2, < 2.0", "1.5", true},

		// Plain equality pads release lengths.
		{"==1.0", "1.0.0", true},
		{"==1.0.0", "1.0", true},
		{"==1.0", "1.0.1", false},
		{"==1.0", "1.0+local", false},
		{"!=1.0", "1.0.0", false},

		// A bare version is an implicit "==".
		{"1.4", "1.4.0", true},
		{"1.4", "1.5", false},

		// Wildcards.
		{"==1.4.*", "1.4", true},
		{"==1.4.*", "1.4.5", true},
		{"==1.4.*", "1.4.0.dev1", true},
		{"==1.4.*", "1.4.9+local", true},
		{"==1.4.*", "1.5.0", false},
		{"==1.4.*", "1.3.9", false},
		{"==1.4.*", "1!1.4.2", false},
		{"!=1.4.*", "1.4.2", false},
		{"!=1.4.*", "1.5", true},

		// Compatible release.
		{"~=2.2", "2.2", true},
		{"~=2.2", "2.2.1", true},
		{"~=2.2", "2.9", true},
		{"~=2.2", "3.0", false},
		{"~=2.2", "2.1", false},
		{"~=2.2", "2.2a1", false},
		{"~=1.4.5", "1.4.5", true},
		{"~=1.4.5", "1.4.9.post2", true},
		{"~=1.4.5", "1.5.0", false},

		// Exclusive bounds are plain ordering: post-releases satisfy
		// ">" and dev releases satisfy "<".
		{">1.0", "1.0.post1", true},
		{">1.0", "1.0", false},
		{">1.0", "1.0.dev1", false},
		{"<1.0", "1.0.dev1", true},
		{"<1.0", "1.0", false},
		{"<=1.0", "1.0.0", true},
		{">=1.0", "1.0", true},

		// Epochs trump everything.
		{">=2.0", "1!1.0", true},
		{"==1!1.0", "1!1.0", true},

		// Arbitrary equality is a byte-for-byte comparison.
		{"===1.0", "1.0", true},
		{"===1.0", "1.0.0", false},
		{"===1.0", "v1.0", false},

		// An empty specifier is satisfied by anything, and so is a
		// trailing operator with no operand.
		{"", "0.0.1.dev1", true},
		{">=", "0.0.1", true},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.spec+"|"+tc.version, func(t *testing.T) {
			t.Parallel()
			ok, err := pep440.CheckVersion(tc.spec, tc.version)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, ok)
		})
	}
}

func TestSpecifierUsageErrors(t *testing.T) {
	t.Parallel()
	for _, spec := range []string{
		">=1.0.*",
		"<1.0.*",
		"~=1.0.*",
		"===1.0.*",
		"~=2",
	} {
		spec := spec
		t.Run(spec, func(t *testing.T) {
			t.Parallel()
			_, err := pep440.CheckVersion(spec, "1.0")
			require.Error(t, err)
			var usageErr *pep440.UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestSpecifierParseErrors(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		">= spam":  "pep440.ParseSpecifier: unexpected token IDENTIFIER (spam) at 3, state Version",
		"==1.0,,":  "pep440.ParseSpecifier: unexpected token COMMA (,) at 6, state Operator",
		"1.0 2.0":  "pep440.ParseSpecifier: unexpected token VERSION (2.0) at 4, state MaybeComma",
		"each-ver": "pep440.ParseSpecifier: unexpected token IDENTIFIER (each-ver) at 0, state Operator",
		"==1.0.0.": "pep440.ParseSpecifier: unexpected token UNEXPECTED at 2, state Version",
	}
	for spec, expErr := range testcases {
		spec := spec
		expErr := expErr
		t.Run(spec, func(t *testing.T) {
			t.Parallel()
			_, err := pep440.ParseSpecifier(spec)
			require.Error(t, err)
			assert.EqualError(t, err, expErr)
			var parseErr *grammar.ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestSpecifierFilter(t *testing.T) {
	t.Parallel()

	spec, err := pep440.ParseSpecifier(">=1.2,<2.0")
	require.NoError(t, err)
	assert.Equal(t, ">=1.2,<2.0", spec.String())

	var vers []pep440.Version
	for _, str := range []string{"1.0", "1.2", "1.4.5", "2.0", "2.1"} {
		vers = append(vers, mustParseVersion(t, str))
	}
	matching, err := spec.Filter(vers)
	require.NoError(t, err)

	var matchingStrs []string
	for _, ver := range matching {
		matchingStrs = append(matchingStrs, ver.String())
	}
	assert.Equal(t, []string{"1.2", "1.4.5"}, matchingStrs)
}
