package render

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/asmlight/asm6502"
	"gopkg.in/yaml.v2"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")
	purpleColor    = lipgloss.Color("#A855F7")
)

// Theme maps token kinds to terminal styles. Kinds without an entry render
// unstyled.
type Theme map[asm6502.TokenKind]lipgloss.Style

func baseStyle() lipgloss.Style {
	return lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		asm6502.CommentSingle:      baseStyle().Foreground(mutedColor).Italic(true),
		asm6502.Punctuation:        baseStyle().Foreground(mutedColor),
		asm6502.NameTag:            baseStyle().Foreground(highlightColor),
		asm6502.NameOther:          baseStyle().Foreground(purpleColor),
		asm6502.KeywordDeclaration: baseStyle().Foreground(accentColor).Bold(true),
		asm6502.CommentPreproc:     baseStyle().Foreground(mutedColor),
		asm6502.LiteralNumber:      baseStyle().Foreground(successColor),
		asm6502.Unrecognized:       baseStyle().Foreground(errorColor).Underline(true),
	}
}

// Style returns the style for kind.
func (t Theme) Style(kind asm6502.TokenKind) lipgloss.Style {
	if style, ok := t[kind]; ok {
		return style
	}
	return baseStyle()
}

type styleSpec struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
}

func (s styleSpec) style() lipgloss.Style {
	style := baseStyle().Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background))
	}
	return style
}

// ParseTheme reads a YAML document keyed by token kind name, for example:
//
//	KeywordDeclaration:
//	  foreground: "#FF8800"
//	  bold: true
//
// Kinds missing from the document keep their default style.
func ParseTheme(data []byte) (Theme, error) {
	var specs map[string]styleSpec
	if err := yaml.UnmarshalStrict(data, &specs); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	theme := DefaultTheme()
	for name, spec := range specs {
		kind, ok := asm6502.ParseTokenKind(name)
		if !ok {
			return nil, fmt.Errorf("parse theme: unknown token kind %q", name)
		}
		theme[kind] = spec.style()
	}
	return theme, nil
}

// LoadTheme reads a theme file from disk.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return ParseTheme(data)
}
