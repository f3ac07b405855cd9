package asm6502

// State names a rule list of the lexer.
type State int

const (
	StateRoot State = iota
	StateWhitespace
	StateComment
	StateLabel
	StateAddress
	StateByte
	StateInstruction
	StateOperand
	StateOffset

	numStates = iota
)

// stay marks a rule that keeps the current state.
const stay State = -1

var stateNames = [...]string{
	StateRoot:        "root",
	StateWhitespace:  "whitespace",
	StateComment:     "comment",
	StateLabel:       "label",
	StateAddress:     "address",
	StateByte:        "byte",
	StateInstruction: "instruction",
	StateOperand:     "operand",
	StateOffset:      "offset",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(?)"
	}
	return stateNames[s]
}
