package asm6502

import (
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/go-logr/logr"
)

// Config customises a Lexer.
type Config struct {
	// Logger receives unmatched input at V(1) and state transitions at V(2).
	Logger logr.Logger
}

// Lexer tokenizes one document. It is not safe for concurrent use and cannot
// be restarted; create a new Lexer to tokenize again.
type Lexer struct {
	input string
	pos   Position
	state State
	rules *ruleSet

	// runStart and runEnd bound the last word run scanned by colonAhead.
	runStart, runEnd int

	// zeroRun counts consecutive matches that consumed nothing.
	zeroRun int
	pending []Token
	errs    []*UnmatchedInputError
	log     logr.Logger
}

// NewLexer returns a lexer positioned at the start of input in the root state.
func NewLexer(input string, cfg Config) *Lexer {
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Lexer{
		input: input,
		pos:   Position{Line: 1, Column: 1},
		state: StateRoot,
		rules: rules,
		log:   log,
	}
}

// Tokenize returns every token of input.
func Tokenize(input string) []Token {
	return slices.Collect(NewLexer(input, Config{}).All())
}

// Next returns the next token. The boolean is false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	for len(l.pending) == 0 {
		if l.pos.Offset >= len(l.input) {
			return Token{}, false
		}
		l.step()
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok, true
}

// All yields the remaining tokens.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// State reports the state the lexer is currently in.
func (l *Lexer) State() State {
	return l.state
}

// Pos returns the position of the cursor. Once Next reports exhaustion it is
// the end of the input.
func (l *Lexer) Pos() Position {
	return l.pos
}

// Errors returns the unmatched input seen so far, in input order.
func (l *Lexer) Errors() []*UnmatchedInputError {
	return l.errs
}

func (l *Lexer) step() {
	rest := l.input[l.pos.Offset:]
	if l.zeroRun <= numStates {
		for _, r := range l.rules.rules[l.state] {
			if l.apply(r, rest) {
				return
			}
		}
		if fb := l.rules.fallbacks[l.state]; fb != nil && l.apply(fb, rest) {
			return
		}
	}
	l.unmatched(rest)
}

func (l *Lexer) apply(r *rule, rest string) bool {
	if r.guard != nil && !r.guard(l) {
		return false
	}
	m := r.pattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return false
	}
	next := l.state
	if r.next != stay {
		next = r.next
	}
	if m[1] == 0 && next == l.state {
		return false
	}

	l.pending = emit(l.pending[:0], r, rest, m, l.pos)
	l.pos = l.pos.advance(rest[:m[1]])
	if m[1] == 0 {
		l.zeroRun++
	} else {
		l.zeroRun = 0
	}
	if next != l.state {
		l.log.V(2).Info("state transition", "from", l.state.String(), "to", next.String(), "offset", l.pos.Offset)
		l.state = next
	}
	return true
}

func (l *Lexer) unmatched(rest string) {
	_, size := utf8.DecodeRuneInString(rest)
	text := rest[:size]
	err := &UnmatchedInputError{State: l.state, Pos: l.pos, Text: text}
	l.errs = append(l.errs, err)
	l.log.V(1).Info("unrecognized input", "state", l.state.String(), "text", text, "line", l.pos.Line, "column", l.pos.Column)

	l.pending = append(l.pending[:0], Token{Kind: Unrecognized, Text: text, Pos: l.pos})
	l.pos = l.pos.advance(text)
	l.state = StateRoot
	l.zeroRun = 0
}

// colonAhead reports whether an optional '@' and the word run at the cursor
// are followed by ':'. The end of the run is cached, so scanning the unmatched
// characters of one long run stays linear.
func (l *Lexer) colonAhead() bool {
	off := l.pos.Offset
	if off < len(l.input) && l.input[off] == '@' {
		off++
	}
	if off < l.runStart || off >= l.runEnd {
		end := off
		for end < len(l.input) && isWordByte(l.input[end]) {
			end++
		}
		l.runStart, l.runEnd = off, end
	}
	return l.runEnd < len(l.input) && l.input[l.runEnd] == ':'
}

// isWordByte matches the ASCII class of \w.
func isWordByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
