// Package render turns asm6502 token streams into highlighted output.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/mgomes/asmlight/asm6502"
)

var classNames = map[asm6502.TokenKind]string{
	asm6502.Whitespace:         "w",
	asm6502.CommentSingle:      "c1",
	asm6502.Punctuation:        "p",
	asm6502.NameTag:            "nt",
	asm6502.NameOther:          "nx",
	asm6502.KeywordDeclaration: "kd",
	asm6502.CommentPreproc:     "cp",
	asm6502.LiteralNumber:      "m",
	asm6502.Unrecognized:       "err",
}

// ClassName returns the short CSS class Rouge-style stylesheets use for kind.
func ClassName(kind asm6502.TokenKind) string {
	if name, ok := classNames[kind]; ok {
		return name
	}
	return "err"
}

// HTML writes tokens as a <pre class="highlight"> block with one span per
// non-empty token.
func HTML(w io.Writer, tokens []asm6502.Token) error {
	var b strings.Builder
	b.WriteString(`<pre class="highlight"><code>`)
	for _, tok := range tokens {
		if tok.Text == "" {
			continue
		}
		fmt.Fprintf(&b, `<span class="%s">%s</span>`, ClassName(tok.Kind), html.EscapeString(tok.Text))
	}
	b.WriteString("</code></pre>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Terminal writes tokens styled with theme. Each line of a token is styled on
// its own so newlines reach the terminal unstyled.
func Terminal(w io.Writer, tokens []asm6502.Token, theme Theme) error {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Text == "" {
			continue
		}
		if tok.Kind == asm6502.Whitespace {
			b.WriteString(tok.Text)
			continue
		}
		style := theme.Style(tok.Kind)
		for i, line := range strings.Split(tok.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
