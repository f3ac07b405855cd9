package asm6502

import "path/filepath"

// Metadata describes the lexer to hosts that register highlighters by name,
// alias, or file name.
type Metadata struct {
	Name        string
	Description string
	Tag         string
	Filenames   []string
}

// Info is the registration metadata for the 6502 lexer.
var Info = Metadata{
	Name:        "6502",
	Description: "MOS 6502 assembly",
	Tag:         "6502",
	Filenames:   []string{"*.asm", "*.s"},
}

// MatchFilename reports whether the base name of path matches one of the
// lexer's filename patterns.
func (m Metadata) MatchFilename(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range m.Filenames {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
