// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package grammar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbond/pepcheck/pkg/python/grammar"
	"github.com/wbond/pepcheck/pkg/testutil"
)

func lexAll(t *testing.T, text string) []grammar.Token {
	t.Helper()
	lexer := grammar.NewLexer(text)
	var ret []grammar.Token
	for {
		tok, err := lexer.Next()
		require.NoError(t, err)
		ret = append(ret, tok)
		if tok.Kind == grammar.KindEndOfInput {
			return ret
		}
	}
}

func TestLexerKinds(t *testing.T) {
	t.Parallel()
	testcases := map[string][]grammar.Kind{
		">=1.2,<2.0": {
			grammar.KindGreaterThanEqual, grammar.KindVersion,
			grammar.KindComma,
			grammar.KindLessThan, grammar.KindVersion,
			grammar.KindEndOfInput,
		},
		"==1.4.*": {
			grammar.KindEqual, grammar.KindStarVersion,
			grammar.KindEndOfInput,
		},
		"~= 2.2": {
			grammar.KindCompatEqual, grammar.KindVersion,
			grammar.KindEndOfInput,
		},
		"=== foobar": {
			grammar.KindStrictEqual, grammar.KindIdentifier,
			grammar.KindEndOfInput,
		},
		"1!2.0rc1.post3.dev4": {
			grammar.KindVersion,
			grammar.KindEndOfInput,
		},
		`sys_platform == "linux" and python_version >= "3.8"`: {
			grammar.KindSysPlatform, grammar.KindEqual, grammar.KindString,
			grammar.KindAnd,
			grammar.KindPythonVersion, grammar.KindGreaterThanEqual, grammar.KindString,
			grammar.KindEndOfInput,
		},
		`os.name == 'posix' or platform.machine == 'x86_64'`: {
			grammar.KindOSName, grammar.KindEqual, grammar.KindString,
			grammar.KindOr,
			grammar.KindPlatformMachine, grammar.KindEqual, grammar.KindString,
			grammar.KindEndOfInput,
		},
		`extra not  in 'test,doc'`: {
			grammar.KindIdentifier, grammar.KindNotIn, grammar.KindString,
			grammar.KindEndOfInput,
		},
		// A known name with a trailing word character is just an
		// identifier.
		"python_version2": {
			grammar.KindIdentifier,
			grammar.KindEndOfInput,
		},
		// A version with a trailing word character is not a version.
		"1.0c": {
			grammar.KindUnexpected,
			grammar.KindEndOfInput,
		},
		"[extras]": {
			grammar.KindOpenBracket, grammar.KindIdentifier, grammar.KindCloseBracket,
			grammar.KindEndOfInput,
		},
		"; ??": {
			grammar.KindSemicolon, grammar.KindUnexpected,
			grammar.KindEndOfInput,
		},
		"": {
			grammar.KindEndOfInput,
		},
		"   ": {
			grammar.KindEndOfInput,
		},
	}
	for text, expKinds := range testcases {
		text := text
		expKinds := expKinds
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			toks := lexAll(t, text)
			actKinds := make([]grammar.Kind, 0, len(toks))
			for _, tok := range toks {
				actKinds = append(actKinds, tok.Kind)
			}
			assert.Equal(t, expKinds, actKinds)
		})
	}
}

func TestLexerTokens(t *testing.T) {
	t.Parallel()
	toks := lexAll(t, `a=="b c"`)
	testutil.AssertEqualDump(t, []grammar.Token{
		{Kind: grammar.KindIdentifier, Span: grammar.Span{Start: 0, End: 1}, Value: "a"},
		{Kind: grammar.KindEqual, Span: grammar.Span{Start: 1, End: 3}, Value: "=="},
		{Kind: grammar.KindString, Span: grammar.Span{Start: 3, End: 8}, Value: "b c"},
		{Kind: grammar.KindEndOfInput, Span: grammar.Span{Start: 8, End: 8}},
	}, toks)
}

// Whitespace aside, the emitted spans tile the input exactly: no gaps, no
// overlaps, and a zero-width end-of-input span at the end.
func TestLexerSpans(t *testing.T) {
	t.Parallel()
	for _, text := range []string{
		">=1.2,<2.0",
		"==1.4.*",
		`(a=='b')and(c!='d')`,
		"===weird&&&",
	} {
		text := text
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			require.NotContains(t, text, " ")
			pos := 0
			for _, tok := range lexAll(t, text) {
				assert.Equal(t, pos, tok.Span.Start)
				assert.GreaterOrEqual(t, tok.Span.End, tok.Span.Start)
				pos = tok.Span.End
			}
			assert.Equal(t, len(text), pos)
		})
	}
}

func TestLexerExhaustion(t *testing.T) {
	t.Parallel()
	lexer := grammar.NewLexer("==1.0")
	for i := 0; i < 3; i++ {
		tok, err := lexer.Next()
		require.NoError(t, err)
		if i == 2 {
			assert.Equal(t, grammar.KindEndOfInput, tok.Kind)
		}
	}
	assert.True(t, lexer.Empty())
	_, err := lexer.Next()
	assert.ErrorIs(t, err, grammar.ErrExhausted)
}

func TestLexerRewind(t *testing.T) {
	t.Parallel()
	lexer := grammar.NewLexer("==1.0,!=2.0")

	first, err := lexer.Next()
	require.NoError(t, err)
	second, err := lexer.Next()
	require.NoError(t, err)

	lexer.Rewind(second)
	again, err := lexer.Next()
	require.NoError(t, err)
	assert.Equal(t, second, again)

	lexer.Rewind(first)
	again, err = lexer.Next()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Rewinding revives an exhausted lexer.
	for !lexer.Empty() {
		_, err := lexer.Next()
		require.NoError(t, err)
	}
	lexer.Rewind(first)
	again, err = lexer.Next()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestTokenDescription(t *testing.T) {
	t.Parallel()
	toks := lexAll(t, `python_version >= "3.8"`)
	descs := make([]string, 0, len(toks))
	for _, tok := range toks {
		descs = append(descs, tok.Description())
	}
	assert.Equal(t, strings.Join([]string{
		"PYTHON VERSION (python_version)",
		"GREATER THAN EQUAL (>=)",
		`STRING ("3.8")`,
		"END OF FILE",
	}, "\n"), strings.Join(descs, "\n"))
}
