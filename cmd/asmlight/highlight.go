package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mgomes/asmlight/render"
)

func highlightCommand(args []string) error {
	fs := flag.NewFlagSet("highlight", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	format := fs.String("format", "terminal", "output format: terminal or html")
	themePath := fs.String("theme", "", "YAML theme for terminal output")
	debug := fs.Bool("debug", false, "log lexer decisions to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("asmlight highlight: path required")
	}
	if *format != "terminal" && *format != "html" {
		return fmt.Errorf("asmlight highlight: unknown format %q", *format)
	}

	theme := render.DefaultTheme()
	if *themePath != "" {
		loaded, err := render.LoadTheme(*themePath)
		if err != nil {
			return err
		}
		theme = loaded
	}

	logger, flush, err := newLogger("highlight", *debug)
	if err != nil {
		return err
	}
	defer flush()

	files, err := collectSourceFiles(targets)
	if err != nil {
		return err
	}

	for _, path := range files {
		file, err := lexFile(path, logger)
		if err != nil {
			return err
		}
		if *format == "html" {
			err = render.HTML(os.Stdout, file.tokens)
		} else {
			err = render.Terminal(os.Stdout, file.tokens, theme)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
	}
	return nil
}
