// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

// Package pep503 implements the normalized-name rules from PEP 503 --
// Simple Repository API.
//
// https://www.python.org/dev/peps/pep-0503/
package pep503

import (
	"regexp"
	"strings"
)

var reNameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName normalizes a Python project name: runs of "-", "_" and "."
// collapse to a single "-", and the result is lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(reNameSeparators.ReplaceAllString(name, "-"))
}
