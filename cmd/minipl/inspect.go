package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/driver"
	"minipl/interpreter-go/pkg/interpreter"
	"minipl/interpreter-go/pkg/lexer"
	"minipl/interpreter-go/pkg/token"
)

func runCheck(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: minipl check <file.mpl>")
		return 1
	}
	source, err := driver.LoadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	program, ok := parseOrReport(source)
	if !ok {
		return 1
	}
	if diags := interpreter.TypecheckProgram(program); len(diags) > 0 {
		reportDiagnostics(os.Stderr, diags)
		return 1
	}
	fmt.Fprintln(os.Stderr, successLabel("No problems found."))
	return 0
}

func runAST(args []string) int {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asYAML := fs.Bool("yaml", false, "print YAML instead of JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: minipl ast [--yaml] <file.mpl>")
		return 1
	}
	source, err := driver.LoadSource(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	program, ok := parseOrReport(source)
	if !ok {
		return 1
	}
	out, err := encodeProgram(program, *asYAML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	os.Stdout.Write(out)
	return 0
}

// encodeProgram renders the tree as JSON. The YAML form is derived from the
// JSON document so both share field names.
func encodeProgram(program *ast.Program, asYAML bool) ([]byte, error) {
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ast: %w", err)
	}
	if !asYAML {
		return append(data, '\n'), nil
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encode ast: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode ast: %w", err)
	}
	return out, nil
}

func runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: minipl tokens <file.mpl>")
		return 1
	}
	source, err := driver.LoadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Pos", "Class", "Lexeme"})
	table.SetAutoWrapText(false)
	for _, tok := range lexer.New(source).Tokenize() {
		table.Append([]string{tok.Pos.String(), tokenClass(tok.Kind), tok.String()})
	}
	table.Render()
	return 0
}

func tokenClass(kind token.Kind) string {
	switch {
	case kind.IsKeyword():
		return "keyword"
	case kind == token.Identifier, kind == token.IntegerConstant, kind == token.StringValue,
		kind == token.Illegal, kind == token.EOF:
		return kind.String()
	default:
		return "symbol"
	}
}
