package interpreter

import (
	"fmt"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/typechecker"
)

// Diagnostic is re-exported for callers that only import the interpreter.
type Diagnostic = typechecker.Diagnostic

// TypecheckProgram runs the static checker over program without executing it.
func TypecheckProgram(program *ast.Program) []Diagnostic {
	return typechecker.New().CheckProgram(program)
}

// ProgramEvaluationOptions configures RunProgram.
type ProgramEvaluationOptions struct {
	// Typecheck runs the static checker before evaluation.
	Typecheck bool
	// AllowDiagnostics permits evaluation to proceed even when the typechecker
	// reports diagnostics. Diagnostics are still returned to the caller.
	AllowDiagnostics bool
}

// RunProgram optionally typechecks program and then evaluates it. When the
// checker reports problems and AllowDiagnostics is false, evaluation is
// skipped and only the diagnostics are returned.
func (i *Interpreter) RunProgram(program *ast.Program, opts ProgramEvaluationOptions) ([]Diagnostic, error) {
	if program == nil {
		return nil, fmt.Errorf("interpreter: program is nil")
	}
	var diags []Diagnostic
	if opts.Typecheck {
		diags = TypecheckProgram(program)
		if len(diags) > 0 && !opts.AllowDiagnostics {
			return diags, nil
		}
	}
	return diags, i.EvaluateProgram(program)
}
