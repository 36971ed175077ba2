// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package grammar

import (
	"fmt"
)

// A Matcher selects the tokens that a Transition applies to; it is either a
// Kind (exact match) or a Category (bitmask match).
type Matcher interface {
	matches(tok Token) bool
}

func (k Kind) matches(tok Token) bool {
	return tok.Kind == k
}

func (c Category) matches(tok Token) bool {
	return tok.Kind.Category()&c != 0
}

// Action says what a Transition does to the state stack.
type Action int

const (
	// Push the target state on top of the current one.
	Push Action = iota
	// Pop the current state.  If a target is given, it replaces the
	// uncovered state.  Popping the last remaining state is a failed
	// match.
	Pop
	// Replace the current state with the target.
	Replace
)

// State names a parser state.  States are ordinary strings so that rule
// tables are self-describing and diagnostics can print the state directly.
type State string

// A Transition consumes one matched token and adjusts the state stack.
type Transition struct {
	Match  Matcher
	Action Action
	Target State
}

// Rules maps each state to its transitions, tried in order.
type Rules map[State][]Transition

// ParseError is a positioned syntax error.
type ParseError struct {
	Token      Token
	State      State
	Incomplete bool
}

func (err *ParseError) Error() string {
	if err.Incomplete {
		return fmt.Sprintf("unexpected end of expression at %d", err.Token.Span.Start)
	}
	return fmt.Sprintf("unexpected token %s at %d, state %s",
		err.Token.Description(), err.Token.Span.Start, err.State)
}

// A Parser runs a rule table over a token stream, accumulating the accepted
// tokens.
type Parser struct {
	rules Rules
	stack []State
	lexer *Lexer

	// OnUnmatched is called when no transition accepts the current token.
	// Returning a non-nil error fails the parse with that error; returning
	// nil aborts the parse quietly, keeping the tokens accepted so far.
	OnUnmatched func(tok Token, stack []State) error
}

// NewParser builds a parser for text with the stack seeded to initial.  It
// panics if a Push or Replace transition is missing its target state; rule
// tables are static program data, so that is a programming error rather
// than a runtime condition.
func NewParser(rules Rules, initial State, text string) *Parser {
	for state, transitions := range rules {
		for _, tr := range transitions {
			if tr.Action != Pop && tr.Target == "" {
				panic(fmt.Sprintf("grammar: state %s: %v transition requires a target state", state, tr.Action))
			}
		}
	}
	return &Parser{
		rules: rules,
		stack: []State{initial},
		lexer: NewLexer(text),
	}
}

// Parse consumes tokens until end of input, returning the accepted tokens.
// If input ends while pushed states remain on the stack (an unterminated
// grouping), it returns a ParseError.
func (p *Parser) Parse() ([]Token, error) {
	var tokens []Token
	tok, err := p.lexer.Next()
	if err != nil {
		return nil, err
	}
	for tok.Kind != KindEndOfInput {
		var fired *Transition
		transitions := p.rules[p.stack[len(p.stack)-1]]
		for i := range transitions {
			tr := &transitions[i]
			if !tr.Match.matches(tok) {
				continue
			}
			if tr.Action == Pop && len(p.stack) == 1 {
				break
			}
			fired = tr
			break
		}
		if fired == nil {
			onUnmatched := p.OnUnmatched
			if onUnmatched == nil {
				onUnmatched = func(tok Token, stack []State) error {
					return &ParseError{Token: tok, State: stack[len(stack)-1]}
				}
			}
			if err := onUnmatched(tok, p.stack); err != nil {
				return nil, err
			}
			return tokens, nil
		}
		tokens = append(tokens, tok)
		switch fired.Action {
		case Push:
			p.stack = append(p.stack, fired.Target)
		case Pop:
			p.stack = p.stack[:len(p.stack)-1]
			if fired.Target != "" {
				p.stack[len(p.stack)-1] = fired.Target
			}
		case Replace:
			p.stack[len(p.stack)-1] = fired.Target
		}
		tok, err = p.lexer.Next()
		if err != nil {
			return nil, err
		}
	}
	if len(p.stack) > 1 {
		return nil, &ParseError{Token: tok, Incomplete: true}
	}
	return tokens, nil
}

func (a Action) String() string {
	switch a {
	case Push:
		return "push"
	case Pop:
		return "pop"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("action(%d)", int(a))
}
