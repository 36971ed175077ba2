// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbond/pepcheck/pkg/python/grammar"
)

// A toy grammar: a comma-separated list of values, with parenthesized
// sub-lists.
const (
	stateItem grammar.State = "Item"
	stateNext grammar.State = "Next"
)

var listRules = grammar.Rules{
	stateItem: {
		{Match: grammar.KindOpenParen, Action: grammar.Push, Target: stateItem},
		{Match: grammar.Value, Action: grammar.Replace, Target: stateNext},
	},
	stateNext: {
		{Match: grammar.KindCloseParen, Action: grammar.Pop, Target: stateNext},
		{Match: grammar.KindComma, Action: grammar.Replace, Target: stateItem},
	},
}

func TestParserAccept(t *testing.T) {
	t.Parallel()
	testcases := map[string]int{
		"spam":              1,
		"spam, eggs":        3,
		"spam,(eggs,ham)":   7,
		"((spam))":          5,
		"(a,(b,c)),d":       11,
		"":                  0,
		`"quoted", python_version`: 3,
	}
	for text, numTokens := range testcases {
		text := text
		numTokens := numTokens
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			toks, err := grammar.NewParser(listRules, stateItem, text).Parse()
			require.NoError(t, err)
			assert.Len(t, toks, numTokens)
		})
	}
}

func TestParserReject(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"spam,,eggs":  "unexpected token COMMA (,) at 5, state Item",
		"spam eggs":   "unexpected token IDENTIFIER (eggs) at 5, state Next",
		"==":          "unexpected token EQUAL (==) at 0, state Item",
		"spam)":       "unexpected token CLOSE PAREN at 4, state Next",
		"(spam,eggs":  "unexpected end of expression at 10",
		"((a),(b)":    "unexpected end of expression at 8",
	}
	for text, expErr := range testcases {
		text := text
		expErr := expErr
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			_, err := grammar.NewParser(listRules, stateItem, text).Parse()
			require.Error(t, err)
			assert.EqualError(t, err, expErr)
			var parseErr *grammar.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParserOnUnmatched(t *testing.T) {
	t.Parallel()

	parser := grammar.NewParser(listRules, stateItem, "spam eggs ham")
	var unmatched []grammar.Token
	parser.OnUnmatched = func(tok grammar.Token, stack []grammar.State) error {
		assert.Equal(t, []grammar.State{stateNext}, stack)
		unmatched = append(unmatched, tok)
		return nil
	}
	toks, err := parser.Parse()
	require.NoError(t, err)

	// A nil-returning callback aborts quietly, keeping the accepted
	// prefix.
	assert.Len(t, toks, 1)
	require.Len(t, unmatched, 1)
	assert.Equal(t, grammar.KindIdentifier, unmatched[0].Kind)
	assert.Equal(t, "eggs", unmatched[0].Value)
}

func TestParserBadRules(t *testing.T) {
	t.Parallel()
	badRules := grammar.Rules{
		stateItem: {
			{Match: grammar.Value, Action: grammar.Replace},
		},
	}
	assert.Panics(t, func() {
		grammar.NewParser(badRules, stateItem, "spam")
	})
}
