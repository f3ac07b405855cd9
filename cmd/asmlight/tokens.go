package main

import (
	"errors"
	"flag"
	"fmt"
)

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	debug := fs.Bool("debug", false, "log lexer decisions to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("asmlight tokens: path required")
	}

	logger, flush, err := newLogger("tokens", *debug)
	if err != nil {
		return err
	}
	defer flush()

	file, err := lexFile(remaining[0], logger)
	if err != nil {
		return err
	}
	for _, tok := range file.tokens {
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Text)
	}
	return nil
}
