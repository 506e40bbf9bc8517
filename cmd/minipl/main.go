package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

const cliToolVersion = "minipl-cli 0.1.0"

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
	successLabel = color.New(color.FgGreen).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "check":
		return runCheck(args[1:])
	case "ast":
		return runAST(args[1:])
	case "tokens":
		return runTokens(args[1:])
	case "repl":
		return runREPL(args[1:])
	case "fetch":
		return runFetch(args[1:])
	default:
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  minipl <file.mpl>                          run a program")
	fmt.Fprintln(os.Stderr, "  minipl run [--typecheck] [target|file]     run a manifest target or a program")
	fmt.Fprintln(os.Stderr, "  minipl check <file.mpl>                    parse and typecheck without running")
	fmt.Fprintln(os.Stderr, "  minipl ast [--yaml] <file.mpl>             print the syntax tree")
	fmt.Fprintln(os.Stderr, "  minipl tokens <file.mpl>                   print the token stream")
	fmt.Fprintln(os.Stderr, "  minipl repl                                start an interactive session")
	fmt.Fprintln(os.Stderr, "  minipl fetch                               fetch git targets and write minipl.lock")
}
