// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package pep440

import (
	"fmt"

	"github.com/wbond/pepcheck/pkg/python/grammar"
)

// Specifier grammar states.  A specifier is a comma-separated list of
// clauses, each an optional comparison operator followed by a version; the
// clauses are combined with AND.
const (
	stateOperator      grammar.State = "Operator"
	stateVersion       grammar.State = "Version"
	stateStrictVersion grammar.State = "StrictVersion"
	stateMaybeComma    grammar.State = "MaybeComma"
)

var specifierRules = grammar.Rules{
	stateOperator: {
		{Match: grammar.KindCompatEqual, Action: grammar.Replace, Target: stateVersion},
		{Match: grammar.KindStrictEqual, Action: grammar.Replace, Target: stateStrictVersion},
		{Match: grammar.KindEqual, Action: grammar.Replace, Target: stateVersion},
		{Match: grammar.KindNotEqual, Action: grammar.Replace, Target: stateVersion},
		{Match: grammar.KindLessThanEqual, Action: grammar.Replace, Target: stateVersion},
		{Match: grammar.KindLessThan, Action: grammar.Replace, Target: stateVersion},
		{Match: grammar.KindGreaterThanEqual, Action: grammar.Replace, Target: stateVersion},
		{Match: grammar.KindGreaterThan, Action: grammar.Replace, Target: stateVersion},
		// A bare version is an implicit "==".
		{Match: grammar.KindStarVersion, Action: grammar.Replace, Target: stateMaybeComma},
		{Match: grammar.KindVersion, Action: grammar.Replace, Target: stateMaybeComma},
	},
	stateVersion: {
		{Match: grammar.KindStarVersion, Action: grammar.Replace, Target: stateMaybeComma},
		{Match: grammar.KindVersion, Action: grammar.Replace, Target: stateMaybeComma},
	},
	stateStrictVersion: {
		{Match: grammar.KindStarVersion, Action: grammar.Replace, Target: stateMaybeComma},
		{Match: grammar.KindVersion, Action: grammar.Replace, Target: stateMaybeComma},
		// "===" compares raw text, so an identifier-shaped operand is fine.
		{Match: grammar.KindIdentifier, Action: grammar.Replace, Target: stateMaybeComma},
	},
	stateMaybeComma: {
		{Match: grammar.KindComma, Action: grammar.Replace, Target: stateOperator},
		{Match: grammar.KindEndOfInput, Action: grammar.Pop},
	},
}

// Specifier is a parsed PEP 440 version specifier such as ">=1.2,<2.0".
type Specifier struct {
	text   string
	tokens []grammar.Token
}

// UsageError reports a specifier that parsed but combines operators and
// operands in an unsupported way, such as "~=2" or ">=1.0.*".
type UsageError struct {
	msg string
}

func (err *UsageError) Error() string {
	return err.msg
}

func usageErrorf(format string, args ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// ParseSpecifier parses a version specifier string.
func ParseSpecifier(str string) (*Specifier, error) {
	tokens, err := grammar.NewParser(specifierRules, stateOperator, str).Parse()
	if err != nil {
		return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
	}
	return &Specifier{text: str, tokens: tokens}, nil
}

func (spec *Specifier) String() string {
	return spec.text
}

// Check reports whether ver satisfies every clause of the specifier.  An
// empty specifier is satisfied by any version.
func (spec *Specifier) Check(ver Version) (bool, error) {
	var op *grammar.Token
	for i := range spec.tokens {
		tok := &spec.tokens[i]
		switch {
		case tok.Kind == grammar.KindComma:
			op = nil
		case tok.Kind.Category()&grammar.ComparisonOperator != 0:
			op = tok
		default:
			opKind, opText := grammar.KindEqual, "=="
			if op != nil {
				opKind, opText = op.Kind, op.Value
			}
			ok, err := checkClause(opKind, opText, *tok, ver)
			if err != nil {
				return false, fmt.Errorf("pep440.Specifier.Check: %w", err)
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

func checkClause(opKind grammar.Kind, opText string, tok grammar.Token, ver Version) (bool, error) {
	if opKind == grammar.KindStrictEqual {
		if tok.Kind == grammar.KindStarVersion {
			return false, usageErrorf("the === operator does not support wildcard (.*) versions")
		}
		return tok.Value == ver.Text, nil
	}

	operand, err := ParseVersion(tok.Value)
	if err != nil {
		return false, err
	}
	if operand.Wildcard && opKind != grammar.KindEqual && opKind != grammar.KindNotEqual {
		return false, usageErrorf("the %s operator does not support wildcard (.*) versions", opText)
	}

	switch opKind {
	case grammar.KindEqual:
		if operand.Wildcard {
			return matchesPrefix(operand, ver), nil
		}
		return ver.Cmp(operand) == 0, nil
	case grammar.KindNotEqual:
		if operand.Wildcard {
			return !matchesPrefix(operand, ver), nil
		}
		return ver.Cmp(operand) != 0, nil
	case grammar.KindCompatEqual:
		if len(operand.Release) < 2 {
			return false, usageErrorf("the ~= operator requires a version with at least two release segments")
		}
		if ver.Cmp(operand) < 0 {
			return false, nil
		}
		return matchesPrefix(operand.releaseTrimmed(), ver), nil
	case grammar.KindLessThanEqual:
		return ver.Cmp(operand) <= 0, nil
	case grammar.KindLessThan:
		return ver.Cmp(operand) < 0, nil
	case grammar.KindGreaterThanEqual:
		return ver.Cmp(operand) >= 0, nil
	case grammar.KindGreaterThan:
		return ver.Cmp(operand) > 0, nil
	}
	return false, usageErrorf("the %s operator is not supported in version specifiers", opText)
}

// matchesPrefix implements wildcard matching: the candidate, reduced to a
// final release, must fall in the half-open range [prefix, prefix with its
// last release number incremented).
func matchesPrefix(prefix, ver Version) bool {
	lower := prefix.suffixCleared()
	upper := lower.lastReleaseAdded(1)
	stripped := ver.suffixCleared()
	return stripped.Cmp(lower) >= 0 && stripped.Cmp(upper) < 0
}

// CheckVersion parses both arguments and reports whether the version
// satisfies the specifier.
func CheckVersion(spec, version string) (bool, error) {
	s, err := ParseSpecifier(spec)
	if err != nil {
		return false, err
	}
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	return s.Check(v)
}

// Filter returns the versions that satisfy the specifier, preserving order.
func (spec *Specifier) Filter(vers []Version) ([]Version, error) {
	var ret []Version
	for _, ver := range vers {
		ok, err := spec.Check(ver)
		if err != nil {
			return nil, err
		}
		if ok {
			ret = append(ret, ver)
		}
	}
	return ret, nil
}
