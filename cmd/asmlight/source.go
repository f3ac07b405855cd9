package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/go-logr/logr"
	"github.com/mgomes/asmlight/asm6502"
)

type lexedFile struct {
	path   string
	source string
	tokens []asm6502.Token
	issues []*asm6502.UnmatchedInputError
}

func lexFile(path string, logger logr.Logger) (lexedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lexedFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return lexSource(path, string(data), logger), nil
}

func lexSource(path, source string, logger logr.Logger) lexedFile {
	l := asm6502.NewLexer(source, asm6502.Config{Logger: logger.WithValues("file", path)})
	tokens := slices.Collect(l.All())
	return lexedFile{path: path, source: source, tokens: tokens, issues: l.Errors()}
}

// collectSourceFiles expands targets into a sorted, de-duplicated file list.
// Files named directly are always included; directories contribute the files
// whose names match the lexer's filename patterns.
func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || !asm6502.Info.MatchFilename(path) {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
