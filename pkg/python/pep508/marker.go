// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package pep508

import (
	"fmt"
	"strings"

	"github.com/wbond/pepcheck/pkg/python/grammar"
	"github.com/wbond/pepcheck/pkg/python/pep440"
)

// Marker grammar states.  A marker is a sequence of "value operator value"
// comparisons joined by "and"/"or", with parenthesized groups.
const (
	stateValue           grammar.State = "Value"
	stateOperator        grammar.State = "Operator"
	stateSecondValue     grammar.State = "SecondValue"
	stateLogicalOperator grammar.State = "LogicalOperator"
)

var markerRules = grammar.Rules{
	stateValue: {
		{Match: grammar.KindOpenParen, Action: grammar.Push, Target: stateValue},
		{Match: grammar.Value, Action: grammar.Replace, Target: stateOperator},
	},
	stateOperator: {
		{Match: grammar.ComparisonOperator, Action: grammar.Replace, Target: stateSecondValue},
	},
	stateSecondValue: {
		{Match: grammar.Value, Action: grammar.Replace, Target: stateLogicalOperator},
	},
	stateLogicalOperator: {
		{Match: grammar.KindCloseParen, Action: grammar.Pop, Target: stateLogicalOperator},
		{Match: grammar.KindAnd, Action: grammar.Replace, Target: stateValue},
		{Match: grammar.KindOr, Action: grammar.Replace, Target: stateValue},
		{Match: grammar.KindEndOfInput, Action: grammar.Pop},
	},
}

// EnvironmentMarker is a parsed PEP 508 environment marker such as
// `sys_platform == "linux" and python_version >= "3.8"`.
type EnvironmentMarker struct {
	text   string
	tokens []grammar.Token
}

// UsageError reports a marker that parsed but combines operators and
// operands in an unsupported way.
type UsageError struct {
	msg string
}

func (err *UsageError) Error() string {
	return err.msg
}

func usageErrorf(format string, args ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// ParseEnvironmentMarker parses an environment marker string.
func ParseEnvironmentMarker(str string) (*EnvironmentMarker, error) {
	tokens, err := grammar.NewParser(markerRules, stateValue, str).Parse()
	if err != nil {
		return nil, fmt.Errorf("pep508.ParseEnvironmentMarker: %w", err)
	}
	return &EnvironmentMarker{text: str, tokens: tokens}, nil
}

func (m *EnvironmentMarker) String() string {
	return m.text
}

// Check evaluates the marker against env.
func (m *EnvironmentMarker) Check(env Environment) (bool, error) {
	return m.CheckWith(env, nil, nil)
}

const kindNone = grammar.Kind(-1)

// markerValue is one operand during evaluation: either a single string or,
// for identifiers remapped through a multi-value map, a list of strings.
type markerValue struct {
	str    string
	list   []string
	isList bool
}

// CheckWith evaluates the marker against env, remapping bare identifiers
// through the given maps first.  An identifier found in singleValues is
// replaced by the mapped string; one found in multiValues is replaced by the
// mapped list, and an "=="/"!=" comparison against it is rewritten to
// "in"/"not in".  Only generic identifiers are remapped, never the named
// environment variables or quoted strings.
//
// Comparisons are evaluated strictly left to right; "and" binds no tighter
// than "or", and both operands of every comparison are always evaluated.
func (m *EnvironmentMarker) CheckWith(env Environment, singleValues map[string]string, multiValues map[string][]string) (bool, error) {
	result := true
	numValues := 0
	logicalOp := kindNone
	comparisonOp := kindNone
	var val markerValue
	var deferred *grammar.Token

	for i := range m.tokens {
		tok := &m.tokens[i]
		_, inSingle := singleValues[tok.Value]
		_, inMulti := multiValues[tok.Value]
		mapped := tok.Kind == grammar.KindIdentifier && (inSingle || inMulti)
		category := tok.Kind.Category()
		switch {
		case mapped && numValues%2 == 0:
			// A remapped left-hand side: hold the token until the
			// comparison operator is known, since a multi-value
			// remap rewrites the operator itself.
			numValues++
			deferred = tok
		case category&grammar.Value != 0:
			numValues++
			var oldVal markerValue
			newOp := kindNone
			if deferred != nil {
				oldVal, newOp = mapToken(deferred, comparisonOp, singleValues, multiValues)
				deferred = nil
			} else {
				oldVal = val
			}
			if mapped {
				var mappedOp grammar.Kind
				val, mappedOp = mapToken(tok, comparisonOp, singleValues, multiValues)
				if newOp == kindNone {
					newOp = mappedOp
				}
			} else {
				val = markerValue{str: realize(tok, env)}
			}
			if newOp != kindNone {
				// Membership tests need the collection on the
				// right-hand side.
				if oldVal.isList && !val.isList {
					oldVal, val = val, oldVal
				}
				comparisonOp = newOp
			}
			if numValues%2 == 0 {
				subResult, err := compare(oldVal, val, comparisonOp)
				if err != nil {
					return false, fmt.Errorf("pep508.EnvironmentMarker.Check: %w", err)
				}
				switch logicalOp {
				case kindNone:
					result = subResult
				case grammar.KindOr:
					result = result || subResult
				case grammar.KindAnd:
					result = result && subResult
				}
			}
		case category&grammar.ComparisonOperator != 0:
			comparisonOp = tok.Kind
		case category&grammar.LogicalOperator != 0:
			logicalOp = tok.Kind
		}
	}
	return result, nil
}

func mapToken(tok *grammar.Token, comparisonOp grammar.Kind, singleValues map[string]string, multiValues map[string][]string) (markerValue, grammar.Kind) {
	if mapped, ok := singleValues[tok.Value]; ok {
		return markerValue{str: mapped}, kindNone
	}
	newOp := kindNone
	switch comparisonOp {
	case grammar.KindEqual:
		newOp = grammar.KindIn
	case grammar.KindNotEqual:
		newOp = grammar.KindNotIn
	}
	return markerValue{list: multiValues[tok.Value], isList: true}, newOp
}

func realize(tok *grammar.Token, env Environment) string {
	if str, ok := env.resolve(tok.Kind); ok {
		return str
	}
	return tok.Value
}

func compare(lhs, rhs markerValue, op grammar.Kind) (bool, error) {
	switch op {
	case grammar.KindIn:
		return contains(rhs, lhs), nil
	case grammar.KindNotIn:
		return !contains(rhs, lhs), nil
	case grammar.KindEqual:
		return valuesEqual(lhs, rhs), nil
	case grammar.KindNotEqual:
		return !valuesEqual(lhs, rhs), nil
	}
	if lhs.isList || rhs.isList {
		return false, usageErrorf("the %s operator does not support remapped value lists", opName(op))
	}
	switch op {
	case grammar.KindStrictEqual:
		return lhs.str == rhs.str, nil
	case grammar.KindCompatEqual:
		ok, err := pep440.CheckVersion("~="+rhs.str, lhs.str)
		if err != nil {
			return false, usageErrorf("the ~= operator requires PEP 440 versions, comparing %q and %q", lhs.str, rhs.str)
		}
		return ok, nil
	case grammar.KindLessThan, grammar.KindLessThanEqual,
		grammar.KindGreaterThan, grammar.KindGreaterThanEqual:
		d := cmpLoose(lhs.str, rhs.str)
		switch op {
		case grammar.KindLessThan:
			return d < 0, nil
		case grammar.KindLessThanEqual:
			return d <= 0, nil
		case grammar.KindGreaterThan:
			return d > 0, nil
		default:
			return d >= 0, nil
		}
	}
	return false, usageErrorf("the %s operator is not supported in environment markers", opName(op))
}

// cmpLoose orders two operands as PEP 440 versions when both parse as such
// ("3.9" >= "3.8.10"), falling back to byte comparison otherwise.
func cmpLoose(a, b string) int {
	av, aerr := pep440.ParseVersion(a)
	bv, berr := pep440.ParseVersion(b)
	if aerr == nil && berr == nil {
		return av.Cmp(bv)
	}
	return strings.Compare(a, b)
}

func contains(haystack, needle markerValue) bool {
	if needle.isList {
		return false
	}
	if haystack.isList {
		for _, item := range haystack.list {
			if item == needle.str {
				return true
			}
		}
		return false
	}
	return strings.Contains(haystack.str, needle.str)
}

func valuesEqual(a, b markerValue) bool {
	if a.isList != b.isList {
		return false
	}
	if !a.isList {
		return a.str == b.str
	}
	if len(a.list) != len(b.list) {
		return false
	}
	for i := range a.list {
		if a.list[i] != b.list[i] {
			return false
		}
	}
	return true
}

func opName(op grammar.Kind) string {
	switch op {
	case grammar.KindStrictEqual:
		return "==="
	case grammar.KindCompatEqual:
		return "~="
	case grammar.KindLessThan:
		return "<"
	case grammar.KindLessThanEqual:
		return "<="
	case grammar.KindGreaterThan:
		return ">"
	case grammar.KindGreaterThanEqual:
		return ">="
	}
	return op.String()
}
