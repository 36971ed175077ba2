// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// DumpValue renders a value in a stable multi-line form suitable for
// diffing.
func DumpValue(val interface{}) string {
	return spewConfig.Sdump(val)
}

// AssertEqualDump compares two values by their dumped forms, reporting a
// unified diff on mismatch.  Token streams and version tuples are much
// easier to eyeball this way than through assert.Equal's one-line output.
func AssertEqualDump(t *testing.T, exp, act interface{}) bool {
	t.Helper()
	expStr := DumpValue(exp)
	actStr := DumpValue(act)
	if expStr == actStr {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expStr),
		B:        difflib.SplitLines(actStr),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	t.Errorf("Value diff:\n%s", diff)
	return false
}
