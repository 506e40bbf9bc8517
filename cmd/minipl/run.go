package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/driver"
	"minipl/interpreter-go/pkg/interpreter"
	"minipl/interpreter-go/pkg/parser"
)

type runOptions struct {
	typecheck bool
}

func runEntry(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	typecheck := fs.Bool("typecheck", false, "typecheck the program before running it")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	opts := runOptions{typecheck: *typecheck}
	rest := fs.Args()

	if len(rest) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(rest[1:], " "))
		return 1
	}

	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		if len(rest) == 1 && looksLikePathCandidate(rest[0]) {
			fmt.Fprintf(os.Stderr, "%s unable to load manifest (%v); falling back to direct file execution\n", warningLabel("warning:"), err)
		} else {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		manifest = nil
	}

	if len(rest) == 0 {
		if manifest == nil {
			fmt.Fprintf(os.Stderr, "minipl run requires a manifest target or source file (%s not found)\n", driver.ManifestFileName)
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		return runTarget(manifest, target, opts)
	}

	candidate := rest[0]
	if manifest != nil {
		if target, ok := manifest.FindTarget(candidate); ok {
			return runTarget(manifest, target, opts)
		}
	}
	return executeFile(candidate, "", opts)
}

func runTarget(manifest *driver.Manifest, target *driver.TargetSpec, opts runOptions) int {
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	var fetcher *driver.GitFetcher
	if target.Git != nil {
		if fetcher, err = newFetcher(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}
	resolved, err := driver.ResolveTarget(manifest, target, lock, fetcher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve target %q: %v\n", target.OriginalName, err)
		return 1
	}
	return executeFile(resolved.Main, resolved.Input, opts)
}

// executeFile runs one program. When inputPath is empty, read statements
// consume the process's stdin.
func executeFile(path, inputPath string, opts runOptions) int {
	source, err := driver.LoadSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	program, ok := parseOrReport(source)
	if !ok {
		return 1
	}

	interp := interpreter.New()
	if inputPath != "" {
		input, err := os.Open(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
			return 1
		}
		defer input.Close()
		interp.SetInput(input)
	}

	diags, err := interp.RunProgram(program, interpreter.ProgramEvaluationOptions{Typecheck: opts.typecheck})
	if len(diags) > 0 {
		reportDiagnostics(os.Stderr, diags)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("Failed with error:"), err)
		return 1
	}
	fmt.Fprintln(os.Stderr, successLabel("Success!"))
	return 0
}

// parseOrReport prints every syntax error and reports whether the program may
// be evaluated.
func parseOrReport(source string) (*ast.Program, bool) {
	program, errs := parser.Parse(source)
	if len(errs) > 0 {
		reportSyntaxErrors(os.Stderr, errs)
		return nil, false
	}
	return program, true
}

func reportSyntaxErrors(w io.Writer, errs []*parser.ParseError) {
	for _, err := range errs {
		fmt.Fprintf(w, "%s %v\n", errorLabel("Syntax error:"), err)
	}
}

func reportDiagnostics(w io.Writer, diags []interpreter.Diagnostic) {
	for _, diag := range diags {
		fmt.Fprintf(w, "%s %s\n", errorLabel("Type error:"), diag.String())
	}
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	lockPath := filepath.Join(manifest.Dir(), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load lockfile: %w", err)
	}
	return lock, nil
}

func newFetcher() (*driver.GitFetcher, error) {
	home, err := driver.ResolveHome()
	if err != nil {
		return nil, err
	}
	return driver.NewGitFetcher(filepath.Join(home, "cache")), nil
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.ContainsRune(arg, filepath.Separator) || strings.Contains(arg, "/") {
		return true
	}
	if strings.HasSuffix(arg, ".mpl") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}
