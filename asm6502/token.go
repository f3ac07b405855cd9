package asm6502

// TokenKind identifies the display class of a token.
type TokenKind int

const (
	Whitespace TokenKind = iota
	CommentSingle
	Punctuation
	NameTag
	NameOther
	KeywordDeclaration
	CommentPreproc
	LiteralNumber
	Unrecognized
)

var tokenKindNames = [...]string{
	Whitespace:         "Whitespace",
	CommentSingle:      "CommentSingle",
	Punctuation:        "Punctuation",
	NameTag:            "NameTag",
	NameOther:          "NameOther",
	KeywordDeclaration: "KeywordDeclaration",
	CommentPreproc:     "CommentPreproc",
	LiteralNumber:      "LiteralNumber",
	Unrecognized:       "Unrecognized",
}

// TokenKinds lists every kind in declaration order.
func TokenKinds() []TokenKind {
	kinds := make([]TokenKind, len(tokenKindNames))
	for i := range tokenKindNames {
		kinds[i] = TokenKind(i)
	}
	return kinds
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(?)"
	}
	return tokenKindNames[k]
}

// ParseTokenKind resolves a kind from its String form.
func ParseTokenKind(name string) (TokenKind, bool) {
	for i, n := range tokenKindNames {
		if n == name {
			return TokenKind(i), true
		}
	}
	return 0, false
}

// Token is a classified slice of the input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Text)
}

// Position identifies where a token starts. Offset is a byte offset; Line and
// Column are 1-based, with Column counted in runes.
type Position struct {
	Offset int
	Line   int
	Column int
}
