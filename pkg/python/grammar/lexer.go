// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package grammar

import (
	"errors"
)

// A Lexer splits text into Tokens, resolving ambiguity by the priority
// order of the Kind table.  Whenever two kinds could match at the same
// offset, the lower-numbered Kind wins; text that no meaningful kind
// matches is swept up by KindUnexpected rather than failing, so the parser
// can report a positioned diagnostic.
type Lexer struct {
	text string
	pos  int
	done bool
}

// ErrExhausted is returned by Next once the end-of-input token has already
// been consumed.
var ErrExhausted = errors.New("no text to parse")

func NewLexer(text string) *Lexer {
	return &Lexer{text: text}
}

// Empty reports whether all input has been consumed, including the trailing
// end-of-input token.
func (lx *Lexer) Empty() bool {
	return lx.done
}

// Rewind moves the lexer back so that tok is the next token returned.  It
// only adjusts the read offset, so it is cheap to call in a loop.
func (lx *Lexer) Rewind(tok Token) {
	lx.pos = tok.Span.Start
	lx.done = false
}

// Next returns the next token.  At the end of input it returns a zero-width
// KindEndOfInput token once; calling it again after that is an error.
func (lx *Lexer) Next() (Token, error) {
	if lx.done {
		return Token{}, ErrExhausted
	}
	for i := lx.pos; i < len(lx.text); i++ {
		for kind := Kind(0); kind < numKinds; kind++ {
			end, ok := lx.match(kind, i)
			if !ok {
				continue
			}
			tok := Token{
				Kind: kind,
				Span: Span{Start: i, End: end},
			}
			if kindTable[kind].hasValue {
				tok.Value = lx.text[i:end]
				if kind == KindString {
					tok.Value = tok.Value[1 : len(tok.Value)-1]
				}
			}
			lx.pos = end
			return tok, nil
		}
	}
	lx.done = true
	return Token{
		Kind: KindEndOfInput,
		Span: Span{Start: len(lx.text), End: len(lx.text)},
	}, nil
}

func (lx *Lexer) match(kind Kind, pos int) (end int, ok bool) {
	info := &kindTable[kind]
	if info.pattern == nil {
		return 0, false
	}
	if info.wordStart && pos > 0 && isWordByte(lx.text[pos-1]) {
		return 0, false
	}
	loc := info.pattern.FindStringIndex(lx.text[pos:])
	if loc == nil {
		return 0, false
	}
	end = pos + loc[1]
	if end < len(lx.text) {
		next := lx.text[end]
		if info.wordEnd && isWordByte(next) {
			return 0, false
		}
		if info.versionTail && isVersionTailByte(next) {
			return 0, false
		}
	}
	return end, true
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z')
}

func isVersionTailByte(c byte) bool {
	return c == '-' || c == '.' ||
		('0' <= c && c <= '9') ||
		('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z')
}
