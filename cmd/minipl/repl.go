package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/driver"
	"minipl/interpreter-go/pkg/interpreter"
	"minipl/interpreter-go/pkg/parser"
	"minipl/interpreter-go/pkg/runtime"
)

const (
	historyFile = "repl_history"
	promptMain  = "minipl> "
	promptCont  = "   ...> "
)

func runREPL(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return 1
	}
	fmt.Fprintf(os.Stdout, "%s (type :help for commands)\n", cliToolVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := driver.ResolveHome(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(home, 0o755); err != nil {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := newReplSession(os.Stdout, os.Stderr, &promptReader{src: ln})
	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if session.handle(src) {
			return 0
		}
	}
}

// readByParseProbe keeps prompting while the accumulated input ends in the
// middle of a statement.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, errs := parser.Parse(src); len(errs) > 0 && parser.IsIncomplete(errs) {
			continue
		}
		return src, true
	}
}

// replSession evaluates each entry against one interpreter so declarations
// persist between prompts.
type replSession struct {
	interp *interpreter.Interpreter
	out    *lineTracker
	errOut io.Writer
}

func newReplSession(out, errOut io.Writer, in io.Reader) *replSession {
	tracker := &lineTracker{w: out, atLineStart: true}
	interp := interpreter.New()
	interp.SetOutput(tracker)
	if in != nil {
		interp.SetInput(in)
	}
	return &replSession{interp: interp, out: tracker, errOut: errOut}
}

// handle runs one entry and reports whether the session should end.
func (s *replSession) handle(src string) bool {
	if cmd := strings.TrimSpace(src); strings.HasPrefix(cmd, ":") {
		switch strings.ToLower(cmd) {
		case ":quit", ":q", ":exit":
			return true
		case ":vars":
			s.printVars()
		case ":help":
			fmt.Fprintln(s.out, "enter Mini-PL statements; :vars lists variables, :quit exits")
		default:
			fmt.Fprintf(s.out, "unknown command %s. Type :help for commands.\n", cmd)
		}
		return false
	}

	program, errs := parser.Parse(src)
	if len(errs) > 0 {
		reportSyntaxErrors(s.errOut, errs)
		return false
	}
	err := s.interp.EvaluateProgram(program)
	s.out.finishLine()
	if err != nil {
		fmt.Fprintf(s.errOut, "%s %v\n", errorLabel("Failed with error:"), err)
	}
	return false
}

func (s *replSession) printVars() {
	env := s.interp.GlobalEnvironment()
	if env.Len() == 0 {
		fmt.Fprintln(s.out, "no variables declared")
		return
	}
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Name", "Type", "Value"})
	table.SetAutoWrapText(false)
	for _, name := range env.Keys() {
		binding, _ := env.Lookup(name)
		value := runtime.Format(binding.Value)
		if binding.Type == ast.TypeString && binding.Initialized() {
			value = fmt.Sprintf("%q", value)
		}
		table.Append([]string{name, binding.Type.String(), value})
	}
	table.Render()
}

// lineSource is the part of *liner.State that read statements need.
type lineSource interface {
	Prompt(string) (string, error)
}

// promptReader feeds read statements from the line editor so the REPL never
// has two readers competing for the terminal.
type promptReader struct {
	src lineSource
	buf []byte
}

func (r *promptReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		line, err := r.src.Prompt("")
		if err != nil {
			return 0, err
		}
		r.buf = append(r.buf[:0], line...)
		r.buf = append(r.buf, '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// lineTracker remembers whether the last byte written ended a line, so the
// prompt never follows unterminated print output.
type lineTracker struct {
	w           io.Writer
	atLineStart bool
}

func (t *lineTracker) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.atLineStart = p[n-1] == '\n'
	}
	return n, err
}

func (t *lineTracker) finishLine() {
	if !t.atLineStart {
		_, _ = t.Write([]byte{'\n'})
	}
}
