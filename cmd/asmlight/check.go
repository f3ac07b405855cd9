package main

import (
	"errors"
	"flag"
	"fmt"
)

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	debug := fs.Bool("debug", false, "log lexer decisions to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("asmlight check: path required")
	}

	logger, flush, err := newLogger("check", *debug)
	if err != nil {
		return err
	}
	defer flush()

	files, err := collectSourceFiles(targets)
	if err != nil {
		return err
	}

	count := 0
	for _, path := range files {
		file, err := lexFile(path, logger)
		if err != nil {
			return err
		}
		for _, issue := range file.issues {
			fmt.Printf("%s:%d:%d: unrecognized input %q in state %s\n", path, issue.Pos.Line, issue.Pos.Column, issue.Text, issue.State)
			count++
		}
	}

	if count == 0 {
		fmt.Println("No issues found")
		return nil
	}
	return fmt.Errorf("check found %d issue(s)", count)
}
