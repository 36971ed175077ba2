// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

// Package grammar implements the shared tokenizer and table-driven parser
// underlying the PEP 440 version-specifier grammar and the PEP 508
// environment-marker grammar.
//
// A grammar is a set of named states with transition rules; each rule matches
// a token by exact Kind or by Category bitmask, and manipulates a stack of
// states (push, pop, or replace the top).  The token inventory is fixed and
// shared between the grammars.
package grammar

import (
	"regexp"
	"strconv"
)

// Category is a bitmask classifying token kinds.  The single-bit values
// classify an individual Kind; the combined values exist for use as
// transition matchers.
type Category uint8

const (
	LogicalOperator Category = 1 << iota
	ComparisonOperator
	Grouping
	Literal
	Identifier
	Uncategorized

	// Combined categories.
	Operator = LogicalOperator | ComparisonOperator | Grouping
	Value    = Literal | Identifier
)

func (c Category) String() string {
	switch c {
	case LogicalOperator:
		return "logical operator"
	case ComparisonOperator:
		return "comparison operator"
	case Grouping:
		return "grouping operator"
	case Literal:
		return "literal"
	case Identifier:
		return "identifier"
	case Uncategorized:
		return "uncategorized"
	case Operator:
		return "operator"
	case Value:
		return "value"
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

// Kind identifies a token type.  The declaration order is the lexer's
// priority order: when several kinds match at the same offset, the
// lowest-numbered one wins.
type Kind int

const (
	KindPythonVersion Kind = iota
	KindPythonFullVersion
	KindOSName
	KindSysPlatform
	KindPlatformVersion
	KindPlatformMachine
	KindPlatformPythonImplementation
	KindImplementationName
	KindImplementationVersion
	KindString
	KindOr
	KindAnd
	KindNotIn
	KindIn
	KindStrictEqual
	KindEqual
	KindNotEqual
	KindCompatEqual
	KindLessThanEqual
	KindLessThan
	KindGreaterThanEqual
	KindGreaterThan
	KindComma
	KindSemicolon
	KindOpenParen
	KindCloseParen
	KindOpenBracket
	KindCloseBracket
	KindStarVersion
	KindVersion
	KindIdentifier
	KindUnexpected
	KindEndOfInput

	numKinds
)

// kindInfo is one row of the token-type table.
//
// RE2 has no lookaround, so the boundary assertions that the token patterns
// need are expressed as flags and enforced by the lexer: wordStart/wordEnd
// stand in for `\b`, and versionTail stands in for the negative lookahead
// `(?![-.0-9a-zA-Z])` that keeps a version literal from matching a prefix of
// a longer word.
type kindInfo struct {
	name        string
	category    Category
	hasValue    bool
	pattern     *regexp.Regexp
	wordStart   bool
	wordEnd     bool
	versionTail bool
}

const releasePat = `(?:[1-9][0-9]*!)?(?:0|[1-9][0-9]*)(?:\.(?:0|[1-9][0-9]*))*`

var kindTable = [numKinds]kindInfo{
	KindPythonVersion:                {name: "PYTHON VERSION", category: Identifier, hasValue: true, pattern: anchored(`python_version`), wordStart: true, wordEnd: true},
	KindPythonFullVersion:            {name: "PYTHON FULL VERSION", category: Identifier, hasValue: true, pattern: anchored(`python_full_version`), wordStart: true, wordEnd: true},
	KindOSName:                       {name: "OS NAME", category: Identifier, hasValue: true, pattern: anchored(`os[._]name`), wordStart: true, wordEnd: true},
	KindSysPlatform:                  {name: "SYS PLATFORM", category: Identifier, hasValue: true, pattern: anchored(`sys[._]platform`), wordStart: true, wordEnd: true},
	KindPlatformVersion:              {name: "PLATFORM VERSION", category: Identifier, hasValue: true, pattern: anchored(`platform[._]version`), wordStart: true, wordEnd: true},
	KindPlatformMachine:              {name: "PLATFORM MACHINE", category: Identifier, hasValue: true, pattern: anchored(`platform[._]machine`), wordStart: true, wordEnd: true},
	KindPlatformPythonImplementation: {name: "PLATFORM PYTHON IMPLEMENTATION", category: Identifier, hasValue: true, pattern: anchored(`platform[._]python_implementation`), wordStart: true, wordEnd: true},
	KindImplementationName:           {name: "IMPLEMENTATION NAME", category: Identifier, hasValue: true, pattern: anchored(`implementation_name`), wordStart: true, wordEnd: true},
	KindImplementationVersion:        {name: "IMPLEMENTATION VERSION", category: Identifier, hasValue: true, pattern: anchored(`implementation_version`), wordStart: true, wordEnd: true},
	KindString:                       {name: "STRING", category: Literal, hasValue: true, pattern: anchored(`"[^"]*"|'[^']*'`)},
	KindOr:                           {name: "OR", category: LogicalOperator, hasValue: true, pattern: anchored(`or`), wordStart: true, wordEnd: true},
	KindAnd:                          {name: "AND", category: LogicalOperator, hasValue: true, pattern: anchored(`and`), wordStart: true, wordEnd: true},
	KindNotIn:                        {name: "NOT IN", category: ComparisonOperator, hasValue: true, pattern: anchored(`not\s+in`), wordStart: true, wordEnd: true},
	KindIn:                           {name: "IN", category: ComparisonOperator, hasValue: true, pattern: anchored(`in`), wordStart: true, wordEnd: true},
	KindStrictEqual:                  {name: "STRICT EQUAL", category: ComparisonOperator, hasValue: true, pattern: anchored(`===`)},
	KindEqual:                        {name: "EQUAL", category: ComparisonOperator, hasValue: true, pattern: anchored(`==`)},
	KindNotEqual:                     {name: "NOT EQUAL", category: ComparisonOperator, hasValue: true, pattern: anchored(`!=`)},
	KindCompatEqual:                  {name: "COMPAT EQUAL", category: ComparisonOperator, hasValue: true, pattern: anchored(`~=`)},
	KindLessThanEqual:                {name: "LESS THAN EQUAL", category: ComparisonOperator, hasValue: true, pattern: anchored(`<=`)},
	KindLessThan:                     {name: "LESS THAN", category: ComparisonOperator, hasValue: true, pattern: anchored(`<`)},
	KindGreaterThanEqual:             {name: "GREATER THAN EQUAL", category: ComparisonOperator, hasValue: true, pattern: anchored(`>=`)},
	KindGreaterThan:                  {name: "GREATER THAN", category: ComparisonOperator, hasValue: true, pattern: anchored(`>`)},
	KindComma:                        {name: "COMMA", category: LogicalOperator, hasValue: true, pattern: anchored(`,`)},
	KindSemicolon:                    {name: "SEMICOLON", category: LogicalOperator, hasValue: true, pattern: anchored(`;`)},
	KindOpenParen:                    {name: "OPEN PAREN", category: Grouping, pattern: anchored(`\(`)},
	KindCloseParen:                   {name: "CLOSE PAREN", category: Grouping, pattern: anchored(`\)`)},
	KindOpenBracket:                  {name: "OPEN BRACKET", category: Grouping, pattern: anchored(`\[`)},
	KindCloseBracket:                 {name: "CLOSE BRACKET", category: Grouping, pattern: anchored(`\]`)},
	KindStarVersion:                  {name: "STAR VERSION", category: Literal, hasValue: true, pattern: anchored(releasePat + `\.\*`), versionTail: true},
	KindVersion:                      {name: "VERSION", category: Literal, hasValue: true, pattern: anchored(releasePat + `(?:(?:a|b|rc)(?:0|[1-9][0-9]*))?(?:\.post(?:0|[1-9][0-9]*))?(?:\.dev(?:0|[1-9][0-9]*))?`), versionTail: true},
	KindIdentifier:                   {name: "IDENTIFIER", category: Identifier, hasValue: true, pattern: anchored(`[A-Za-z](?:[A-Za-z0-9._-]*[A-Za-z0-9_])?`), wordStart: true, wordEnd: true},
	KindUnexpected:                   {name: "UNEXPECTED", category: Uncategorized, pattern: anchored(`\S+`)},
	KindEndOfInput:                   {name: "END OF FILE", category: Uncategorized},
}

func anchored(pat string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pat + `)`)
}

// Category returns the category that classifies this kind.
func (k Kind) Category() Category {
	return kindTable[k].category
}

func (k Kind) String() string {
	return kindTable[k].name
}

// Span is a half-open byte range within the parsed text.
type Span struct {
	Start int
	End   int
}

// Token is a lexeme recognized by the Lexer.  Value is set only for
// value-bearing kinds (literals, identifiers, and named operators); for
// string literals it is the text between the quotes, for everything else it
// is the matched text itself.
type Token struct {
	Kind  Kind
	Span  Span
	Value string
}

// Description renders the token for diagnostics.
func (tok Token) Description() string {
	info := &kindTable[tok.Kind]
	if !info.hasValue {
		return info.name
	}
	if tok.Kind == KindString {
		return info.name + " (" + strconv.Quote(tok.Value) + ")"
	}
	return info.name + " (" + tok.Value + ")"
}

func (tok Token) String() string {
	return tok.Description()
}
