package interpreter

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/parser"
	"minipl/interpreter-go/pkg/runtime"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, errs := parser.Parse(source)
	if len(errs) > 0 {
		t.Fatalf("parse: %v", parser.ErrorList(errs))
	}
	return prog
}

// run evaluates source with the given stdin and returns stdout and the error.
func run(t *testing.T, source, input string) (string, error) {
	t.Helper()
	interp := New()
	var out bytes.Buffer
	interp.SetOutput(&out)
	interp.SetInput(strings.NewReader(input))
	err := interp.EvaluateProgram(mustParse(t, source))
	return out.String(), err
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		input  string
		want   string
	}{
		{"for loop", "var i : int; for i in 1..3 do print i; end for;", "", "123"},
		{"right nesting", "print 1 + 2 - 3;", "", "0"},
		{"grouping", "print (1 + 2) - 3;", "", "0"},
		{"no precedence", "print 2 * 3 + 4;", "", "14"},
		{"assert continues", "assert (false); print 1;", "", "Assertion failed: false\n1"},
		{"assert true is silent", "assert (1 < 2); print 2;", "", "2"},
		{"division truncates", "print 0 - 7 / 2;", "", "-3"},
		{"min int divided by minus one", "var m : int := (0 - 2147483647) - 1; print m / (0 - 1);", "", "-2147483648"},
		{"multiplication wraps", "print 65536 * 65536;", "", "0"},
		{"bool equality", "print (true = false) = false;", "", "true"},
		{"bool ordering", "print true > false;", "", "true"},
		{"string ordering", `print "b" > "abc";`, "", "true"},
		{"read crlf", "var s : string; read s; print s;", "line\r\nnext\n", "line"},
		{"read last line without newline", "var s : string; read s; print s;", "tail", "tail"},
		{"read negative int", "var n : int; read n; print n + 1;", "-5\n", "-4"},
		{"loop bounds evaluated once", "var n : int := 3; var i : int; for i in 1..n do n := n + 1; end for; print n;", "", "6"},
		{"loop body can use loop variable", "var i : int; var sum : int := 0; for i in 1..4 do sum := sum + i; end for; print sum;", "", "10"},
		{"reassignment", `var s : string := "a"; s := s + s; s := s + s; print s;`, "", "aaaa"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, tc.source, tc.input)
			if err != nil {
				t.Fatalf("evaluation error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected output %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEvaluateRuntimeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		input  string
		kind   ErrorKind
		varNm  string
	}{
		{"uninitialized read", "var x : int; print x;", "", VariableNotInitialized, "x"},
		{"undeclared read", "print y;", "", VariableNotInitialized, "y"},
		{"undeclared assign", "y := 1;", "", VariableNotInitialized, "y"},
		{"undeclared read statement", "read y;", "1\n", VariableNotInitialized, "y"},
		{"redeclare", "var x : int; var x : bool;", "", VariableAlreadyInitialized, "x"},
		{"redeclare with init", "var x : int := 1; var x : int := 2;", "", VariableAlreadyInitialized, "x"},
		{"init mismatch", `var x : int := "a";`, "", MismatchedTypes, ""},
		{"assign mismatch", "var x : int; x := true;", "", MismatchedTypes, ""},
		{"mixed operands", `print 1 + "a";`, "", MismatchedTypes, ""},
		{"not on int", "print !1;", "", MismatchedTypes, ""},
		{"assert non bool", "assert (1);", "", MismatchedTypes, ""},
		{"read bool", "var b : bool; read b;", "true\n", MismatchedTypes, ""},
		{"read bad int", "var n : int; read n;", "twelve\n", MismatchedTypes, ""},
		{"read int out of range", "var n : int; read n;", "2147483648\n", MismatchedTypes, ""},
		{"string bound", `var i : int; for i in "a"..3 do end for;`, "", MismatchedTypes, ""},
		{"bool loop variable", "var i : bool; for i in 1..3 do end for;", "", MismatchedTypes, ""},
		{"undeclared loop variable", "for i in 1..3 do end for;", "", VariableNotInitialized, "i"},
		{"string minus", `print "a" - "b";`, "", UnsupportedOperation, ""},
		{"bool plus", "print true + true;", "", UnsupportedOperation, ""},
		{"int and", "print 1 & 1;", "", UnsupportedOperation, ""},
		{"division by zero", "print 1 / 0;", "", DivisionByZero, ""},
		{"read at eof", "var s : string; read s;", "", IOError, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.source, tc.input)
			var rt *RuntimeError
			if !errors.As(err, &rt) {
				t.Fatalf("expected *RuntimeError, got %v", err)
			}
			if rt.Kind != tc.kind {
				t.Fatalf("expected %s, got %s (%v)", tc.kind, rt.Kind, rt)
			}
			if rt.Name != tc.varNm {
				t.Fatalf("expected variable %q, got %q", tc.varNm, rt.Name)
			}
			if !IsKind(err, tc.kind) {
				t.Fatalf("IsKind(%v, %s) = false", err, tc.kind)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := run(t, "var x : int;\nprint x;", "")
	if got, want := err.Error(), "2:1: Variable x not initialized"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	_, err = run(t, "var x : int; var x : int;", "")
	if got, want := err.(*RuntimeError).Message(), "Variable x is already initialized"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIOErrorUnwraps(t *testing.T) {
	_, err := run(t, "var s : string; read s;", "")
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected error wrapping io.EOF, got %v", err)
	}
}

func TestFailFastStopsLoop(t *testing.T) {
	source := `
var i : int;
var d : int := 3;
for i in 1..5 do
	print 12 / d;
	d := d - 1;
end for;
print "unreachable";
`
	out, err := run(t, source, "")
	if !IsKind(err, DivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if out != "4612" {
		t.Fatalf("expected output before the failure only, got %q", out)
	}
	// The innermost statement is blamed, not the enclosing loop.
	if rt := err.(*RuntimeError); rt.Pos.Line != 5 {
		t.Fatalf("expected error on line 5, got %s", rt.Pos)
	}
}

func TestEnvironmentAfterEvaluation(t *testing.T) {
	interp := New()
	interp.SetOutput(io.Discard)
	prog := mustParse(t, `var i : int; var s : string; var b : bool := true; for i in 1..4 do end for;`)
	if err := interp.EvaluateProgram(prog); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	env := interp.GlobalEnvironment()
	if keys := env.Keys(); strings.Join(keys, ",") != "b,i,s" {
		t.Fatalf("unexpected keys %v", keys)
	}
	i, _ := env.Lookup("i")
	if i.Value != (runtime.IntegerValue{Val: 4}) {
		t.Fatalf("expected loop variable to hold the end bound, got %#v", i.Value)
	}
	s, _ := env.Lookup("s")
	if s.Initialized() || s.Type != ast.TypeString {
		t.Fatalf("expected uninitialized string binding, got %#v", s)
	}
}

func TestInterpreterKeepsStateAcrossPrograms(t *testing.T) {
	interp := New()
	var out bytes.Buffer
	interp.SetOutput(&out)
	for _, source := range []string{"var n : int := 2;", "n := n * 21;", "print n;"} {
		if err := interp.EvaluateProgram(mustParse(t, source)); err != nil {
			t.Fatalf("evaluate %q: %v", source, err)
		}
	}
	if out.String() != "42" {
		t.Fatalf("expected 42, got %q", out.String())
	}
}

func TestRunProgramTypecheck(t *testing.T) {
	prog := mustParse(t, `print "before"; var x : int := "a";`)

	interp := New()
	var out bytes.Buffer
	interp.SetOutput(&out)
	diags, err := interp.RunProgram(prog, ProgramEvaluationOptions{Typecheck: true})
	if err != nil {
		t.Fatalf("expected evaluation to be skipped, got %v", err)
	}
	if len(diags) != 1 || out.Len() != 0 {
		t.Fatalf("expected one diagnostic and no output, got %v and %q", diags, out.String())
	}

	diags, err = interp.RunProgram(prog, ProgramEvaluationOptions{Typecheck: true, AllowDiagnostics: true})
	if len(diags) != 1 {
		t.Fatalf("expected diagnostics to be returned, got %v", diags)
	}
	if !IsKind(err, MismatchedTypes) || out.String() != "before" {
		t.Fatalf("expected evaluation to run and fail, got %v with output %q", err, out.String())
	}
}
