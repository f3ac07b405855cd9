// Package asm6502 classifies MOS 6502 assembly listings for display. It is a
// small state machine over per-state regular expression rules:
//   - Address headers such as `0600:` followed by raw opcode bytes.
//   - Three letter mnemonics in upper or lower case, optionally starred.
//   - Operands written as `$`/`#` hex literals or symbolic names with an
//     optional `+N` displacement.
//   - Labels (`loop:`, `@inner:`) and `;` comments.
//
// The lexer never fails. Text no rule accepts is emitted as an Unrecognized
// token and scanning resumes from the root state, so concatenating the text of
// all tokens always reproduces the input.
package asm6502
