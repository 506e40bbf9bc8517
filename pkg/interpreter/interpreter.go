package interpreter

import (
	"bufio"
	"io"
	"os"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Mini-PL programs against a single global
// environment. It is not safe for concurrent use.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
	in     *bufio.Reader
}

// New returns an interpreter with an empty global environment wired to the
// process's standard streams.
func New() *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(),
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}
}

// SetOutput redirects print and assertion output.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// SetInput replaces the source read statements consume lines from.
func (i *Interpreter) SetInput(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		i.in = br
		return
	}
	i.in = bufio.NewReader(r)
}

// GlobalEnvironment returns the interpreter’s global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// EvaluateProgram executes statements in order and stops at the first
// runtime error. Output produced before the failure has already been written.
func (i *Interpreter) EvaluateProgram(program *ast.Program) error {
	if program == nil {
		return nil
	}
	return i.evaluateStatements(program.Statements)
}

func (i *Interpreter) evaluateStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := i.evaluateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}
