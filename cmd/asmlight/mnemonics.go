package main

import (
	"sort"
	"strings"
)

// mnemonicDocs describes the documented NMOS 6502 instruction set.
var mnemonicDocs = map[string]string{
	"ADC": "add with carry",
	"AND": "logical AND with accumulator",
	"ASL": "arithmetic shift left",
	"BCC": "branch if carry clear",
	"BCS": "branch if carry set",
	"BEQ": "branch if equal",
	"BIT": "bit test",
	"BMI": "branch if minus",
	"BNE": "branch if not equal",
	"BPL": "branch if plus",
	"BRK": "force interrupt",
	"BVC": "branch if overflow clear",
	"BVS": "branch if overflow set",
	"CLC": "clear carry flag",
	"CLD": "clear decimal mode",
	"CLI": "clear interrupt disable",
	"CLV": "clear overflow flag",
	"CMP": "compare accumulator",
	"CPX": "compare X register",
	"CPY": "compare Y register",
	"DEC": "decrement memory",
	"DEX": "decrement X register",
	"DEY": "decrement Y register",
	"EOR": "exclusive OR with accumulator",
	"INC": "increment memory",
	"INX": "increment X register",
	"INY": "increment Y register",
	"JMP": "jump",
	"JSR": "jump to subroutine",
	"LDA": "load accumulator",
	"LDX": "load X register",
	"LDY": "load Y register",
	"LSR": "logical shift right",
	"NOP": "no operation",
	"ORA": "logical inclusive OR with accumulator",
	"PHA": "push accumulator",
	"PHP": "push processor status",
	"PLA": "pull accumulator",
	"PLP": "pull processor status",
	"ROL": "rotate left",
	"ROR": "rotate right",
	"RTI": "return from interrupt",
	"RTS": "return from subroutine",
	"SBC": "subtract with carry",
	"SEC": "set carry flag",
	"SED": "set decimal flag",
	"SEI": "set interrupt disable",
	"STA": "store accumulator",
	"STX": "store X register",
	"STY": "store Y register",
	"TAX": "transfer accumulator to X",
	"TAY": "transfer accumulator to Y",
	"TSX": "transfer stack pointer to X",
	"TXA": "transfer X to accumulator",
	"TXS": "transfer X to stack pointer",
	"TYA": "transfer Y to accumulator",
}

func describeMnemonic(word string) (string, bool) {
	desc, ok := mnemonicDocs[strings.ToUpper(word)]
	return desc, ok
}

func sortedMnemonics() []string {
	names := make([]string, 0, len(mnemonicDocs))
	for name := range mnemonicDocs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
