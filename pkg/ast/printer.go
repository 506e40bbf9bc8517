package ast

import (
	"strconv"
	"strings"

	"minipl/interpreter-go/pkg/token"
)

// Rendering produces source text that parses back to an equal tree. Binary
// and unary expressions are always parenthesized because the grammar has no
// operator precedence of its own.

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, stmt := range p.Statements {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "\n")
}

func (e *Identifier) String() string { return e.Name }

func (e *IntegerLiteral) String() string { return strconv.FormatInt(int64(e.Value), 10) }

func (e *StringLiteral) String() string { return token.Quote(e.Value) }

func (e *BooleanLiteral) String() string { return strconv.FormatBool(e.Value) }

func (e *UnaryExpression) String() string {
	return "(" + e.Operator.String() + exprString(e.Operand) + ")"
}

func (e *BinaryExpression) String() string {
	return "(" + exprString(e.Left) + " " + e.Operator.String() + " " + exprString(e.Right) + ")"
}

func (s *VarDeclare) String() string {
	return "var " + s.Name + " : " + s.Type.String() + ";"
}

func (s *VarInit) String() string {
	return "var " + s.Name + " : " + s.Type.String() + " := " + exprString(s.Value) + ";"
}

func (s *Assign) String() string {
	return s.Name + " := " + exprString(s.Value) + ";"
}

func (s *Print) String() string {
	return "print " + exprString(s.Value) + ";"
}

func (s *Assert) String() string {
	return "assert (" + exprString(s.Condition) + ");"
}

func (s *Read) String() string {
	return "read " + s.Name + ";"
}

func (s *For) String() string {
	var b strings.Builder
	b.WriteString("for ")
	b.WriteString(s.Variable)
	b.WriteString(" in ")
	b.WriteString(exprString(s.Start))
	b.WriteString("..")
	b.WriteString(exprString(s.End))
	b.WriteString(" do")
	for _, stmt := range s.Body {
		b.WriteByte(' ')
		b.WriteString(stmt.String())
	}
	b.WriteString(" end for;")
	return b.String()
}

func exprString(expr Expression) string {
	if expr == nil {
		return "<nil>"
	}
	return expr.String()
}
