package ast

import "testing"

func TestNodeRendering(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Declare("x", TypeInteger), "var x : int;"},
		{Init("s", TypeString, Str("a \"b\"\n")), `var s : string := "a \"b\"\n";`},
		{Set("x", Bin(Int(1), OpPlus, Bin(Int(2), OpMinus, Int(3)))), "x := (1 + (2 - 3));"},
		{PrintStmt(Not(Bin(ID("a"), OpAnd, Bool(false)))), "print (!(a & false));"},
		{AssertStmt(Bin(ID("x"), OpEquals, Int(0))), "assert ((x = 0));"},
		{ReadStmt("n"), "read n;"},
		{Loop("i", Int(1), ID("n"), PrintStmt(ID("i"))), "for i in 1..n do print i; end for;"},
		{Loop("i", Int(1), Int(0)), "for i in 1..0 do end for;"},
		{Prog(Declare("b", TypeBoolean), PrintStmt(Bool(true))), "var b : bool;\nprint true;"},
	}
	for _, tc := range tests {
		if got := tc.node.String(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.node.NodeType(), tc.want, got)
		}
	}
}

func TestNodeTypes(t *testing.T) {
	if got := Int(1).NodeType(); got != NodeIntegerLiteral {
		t.Fatalf("expected %s, got %s", NodeIntegerLiteral, got)
	}
	if got := Loop("i", Int(1), Int(2)).NodeType(); got != NodeFor {
		t.Fatalf("expected %s, got %s", NodeFor, got)
	}
}
