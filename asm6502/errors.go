package asm6502

import "fmt"

// UnmatchedInputError records a position where the current state had no rule
// that matched. The lexer reports it as an Unrecognized token and carries on
// from the root state.
type UnmatchedInputError struct {
	State State
	Pos   Position
	Text  string
}

func (e *UnmatchedInputError) Error() string {
	return fmt.Sprintf("unrecognized input %q at %d:%d in state %s", e.Text, e.Pos.Line, e.Pos.Column, e.State)
}
