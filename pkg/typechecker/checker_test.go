package typechecker

import (
	"strings"
	"testing"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/parser"
)

func checkSource(t *testing.T, source string) []Diagnostic {
	t.Helper()
	prog, errs := parser.Parse(source)
	if len(errs) > 0 {
		t.Fatalf("parse: %v", parser.ErrorList(errs))
	}
	return New().CheckProgram(prog)
}

func TestCheckerAcceptsWellTypedProgram(t *testing.T) {
	source := `
var n : int := 3;
var s : string := "x";
var ok : bool := !(n < 2) & ("a" < s);
var i : int;
for i in 1..n * 2 do
	s := s + "y";
	assert (i > 0);
end for;
read n;
read s;
print s + "!";
print n = 3;
`
	if diags := checkSource(t, source); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestCheckerDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"undeclared use", "print x;", "undeclared variable x"},
		{"undeclared assign", "x := 1;", "undeclared variable x"},
		{"self reference in initializer", "var x : int := x;", "undeclared variable x"},
		{"redeclaration", "var x : int; var x : string;", "variable x is already declared at 1:1"},
		{"init mismatch", `var x : int := "a";`, "cannot initialize int variable x with string"},
		{"assign mismatch", "var b : bool; b := 1;", "cannot assign int to bool variable b"},
		{"read bool", "var b : bool; read b;", "cannot read into bool variable b"},
		{"assert int", "assert (1 + 1);", "assert requires bool condition (got int)"},
		{"loop bound", `var i : int; for i in 1.."9" do end for;`, "loop bound must be int (got string)"},
		{"loop variable type", "var i : string; for i in 1..2 do end for;", "loop variable i must be int (declared string)"},
		{"loop variable missing", "for i in 1..2 do end for;", "undeclared variable i"},
		{"mixed operands", `print 1 + "a";`, "mismatched operand types int + string"},
		{"unsupported operator", `print "a" - "b";`, "operator '-' not supported for string operands"},
		{"bool arithmetic", "print true * false;", "operator '*' not supported for bool operands"},
		{"not on int", "print !1;", "unary '!' requires boolean operand (got int)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			diags := checkSource(t, tc.source)
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
			}
			if !strings.Contains(diags[0].Message, tc.want) {
				t.Fatalf("expected diagnostic containing %q, got %q", tc.want, diags[0].Message)
			}
			if !strings.HasPrefix(diags[0].Message, "typechecker: ") {
				t.Fatalf("diagnostic missing prefix: %q", diags[0].Message)
			}
		})
	}
}

func TestCheckerDoesNotCascade(t *testing.T) {
	diags := checkSource(t, "var y : int := missing + 1 * 2;")
	if len(diags) != 1 {
		t.Fatalf("expected a single diagnostic, got %v", diags)
	}
}

func TestCheckerKeepsDeclarationsAcrossCalls(t *testing.T) {
	c := New()
	first, _ := parser.Parse("var x : int := 1;")
	second, _ := parser.Parse("x := x + 1; var x : bool;")
	if diags := c.CheckProgram(first); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	diags := c.CheckProgram(second)
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "already declared") {
		t.Fatalf("expected redeclaration diagnostic, got %v", diags)
	}
}

func TestDiagnosticPosition(t *testing.T) {
	diags := checkSource(t, "var x : int;\n  x := true;")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", diags)
	}
	if got := diags[0].String(); !strings.HasPrefix(got, "2:3: ") {
		t.Fatalf("expected position prefix, got %q", got)
	}
	if _, ok := diags[0].Node.(*ast.Assign); !ok {
		t.Fatalf("expected diagnostic on assignment, got %T", diags[0].Node)
	}
}
