// Package lexdef exposes the asm6502 lexer as a participle lexer definition so
// participle grammars can parse 6502 listings.
package lexdef

import (
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/mgomes/asmlight/asm6502"
)

// Definition implements lexer.Definition and lexer.StringDefinition. Symbol
// names are the asm6502 token kind names. Zero-length tokens are dropped.
type Definition struct {
	Config asm6502.Config
}

var (
	_ lexer.Definition       = Definition{}
	_ lexer.StringDefinition = Definition{}
)

var symbols = func() map[string]lexer.TokenType {
	out := map[string]lexer.TokenType{"EOF": lexer.EOF}
	for _, kind := range asm6502.TokenKinds() {
		out[kind.String()] = tokenType(kind)
	}
	return out
}()

func tokenType(kind asm6502.TokenKind) lexer.TokenType {
	return lexer.TokenType(kind) + 1
}

// Symbols returns the token type of every symbol name.
func (Definition) Symbols() map[string]lexer.TokenType {
	return symbols
}

// Lex reads the whole of r and tokenizes it.
func (d Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(data))
}

// LexString tokenizes input.
func (d Definition) LexString(filename string, input string) (lexer.Lexer, error) {
	return &adapter{filename: filename, lex: asm6502.NewLexer(input, d.Config)}, nil
}

type adapter struct {
	filename string
	lex      *asm6502.Lexer
}

func (a *adapter) Next() (lexer.Token, error) {
	for {
		tok, ok := a.lex.Next()
		if !ok {
			return lexer.EOFToken(a.position(a.lex.Pos())), nil
		}
		if tok.Text == "" {
			continue
		}
		return lexer.Token{Type: tokenType(tok.Kind), Value: tok.Text, Pos: a.position(tok.Pos)}, nil
	}
}

func (a *adapter) position(p asm6502.Position) lexer.Position {
	return lexer.Position{
		Filename: a.filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}
