package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "highlight":
		return highlightCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "view":
		return viewCommand(args[2:])
	case "lsp":
		return lspCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] <path>...\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  highlight   print highlighted source (-format terminal|html, -theme <file>)")
	fmt.Fprintln(os.Stderr, "  tokens      print the token stream of a file")
	fmt.Fprintln(os.Stderr, "  check       report input the lexer could not classify")
	fmt.Fprintln(os.Stderr, "  view        browse a highlighted file (-theme <file>)")
	fmt.Fprintln(os.Stderr, "  lsp         run the language server on stdio")
	fmt.Fprintln(os.Stderr, "Every command accepts -debug to log lexer decisions to stderr.")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
