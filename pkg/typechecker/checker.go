package typechecker

import (
	"fmt"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/token"
)

// Checker walks a program once and reports type errors without executing it.
// The evaluator repeats every check at run time; these diagnostics only let
// tools reject a program before it produces partial output.
type Checker struct {
	env *Environment
}

// Diagnostic represents a type-checking error.
type Diagnostic struct {
	Message string
	Node    ast.Node
}

// Position returns where the offending node starts.
func (d Diagnostic) Position() token.Position {
	if d.Node == nil {
		return token.Position{}
	}
	return d.Node.Position()
}

func (d Diagnostic) String() string {
	if pos := d.Position(); pos.IsValid() {
		return pos.String() + ": " + d.Message
	}
	return d.Message
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{env: NewEnvironment()}
}

// CheckProgram typechecks every statement in order. Declarations persist
// across calls, so a REPL can check one chunk at a time.
func (c *Checker) CheckProgram(program *ast.Program) []Diagnostic {
	if program == nil {
		return nil
	}
	var diagnostics []Diagnostic
	for _, stmt := range program.Statements {
		diagnostics = append(diagnostics, c.checkStatement(stmt)...)
	}
	return diagnostics
}

func (c *Checker) checkStatement(stmt ast.Statement) []Diagnostic {
	switch s := stmt.(type) {
	case *ast.VarDeclare:
		return c.declare(s, s.Name, s.Type)
	case *ast.VarInit:
		diags, valueType := c.checkExpression(s.Value)
		declared := PrimitiveType{Kind: s.Type}
		if !typeAssignable(valueType, declared) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("typechecker: cannot initialize %s variable %s with %s", declared.Name(), s.Name, typeName(valueType)),
				Node:    s,
			})
		}
		return append(diags, c.declare(s, s.Name, s.Type)...)
	case *ast.Assign:
		diags, valueType := c.checkExpression(s.Value)
		declared, ok := c.lookup(s.Name)
		if !ok {
			return append(diags, undeclared(s, s.Name))
		}
		if !typeAssignable(valueType, declared) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("typechecker: cannot assign %s to %s variable %s", typeName(valueType), declared.Name(), s.Name),
				Node:    s,
			})
		}
		return diags
	case *ast.Print:
		diags, _ := c.checkExpression(s.Value)
		return diags
	case *ast.Read:
		declared, ok := c.lookup(s.Name)
		if !ok {
			return []Diagnostic{undeclared(s, s.Name)}
		}
		if declared == boolType {
			return []Diagnostic{{
				Message: fmt.Sprintf("typechecker: cannot read into bool variable %s", s.Name),
				Node:    s,
			}}
		}
		return nil
	case *ast.Assert:
		diags, condType := c.checkExpression(s.Condition)
		if !typeAssignable(condType, boolType) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("typechecker: assert requires bool condition (got %s)", typeName(condType)),
				Node:    s,
			})
		}
		return diags
	case *ast.For:
		return c.checkFor(s)
	default:
		return []Diagnostic{{Message: fmt.Sprintf("typechecker: unsupported statement %T", stmt), Node: stmt}}
	}
}

func (c *Checker) checkFor(loop *ast.For) []Diagnostic {
	var diags []Diagnostic
	for _, bound := range []ast.Expression{loop.Start, loop.End} {
		boundDiags, boundType := c.checkExpression(bound)
		diags = append(diags, boundDiags...)
		if !typeAssignable(boundType, intType) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("typechecker: loop bound must be int (got %s)", typeName(boundType)),
				Node:    bound,
			})
		}
	}
	declared, ok := c.lookup(loop.Variable)
	switch {
	case !ok:
		diags = append(diags, undeclared(loop, loop.Variable))
	case declared != intType:
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("typechecker: loop variable %s must be int (declared %s)", loop.Variable, declared.Name()),
			Node:    loop,
		})
	}
	for _, stmt := range loop.Body {
		diags = append(diags, c.checkStatement(stmt)...)
	}
	return diags
}

func (c *Checker) declare(node ast.Node, name string, typ ast.DeclaredType) []Diagnostic {
	if _, exists := c.env.Lookup(name); exists {
		msg := fmt.Sprintf("typechecker: variable %s is already declared", name)
		if prev := c.env.Declaration(name); prev != nil && prev.Position().IsValid() {
			msg += " at " + prev.Position().String()
		}
		return []Diagnostic{{Message: msg, Node: node}}
	}
	c.env.Define(name, PrimitiveType{Kind: typ}, node)
	return nil
}

func (c *Checker) lookup(name string) (Type, bool) {
	return c.env.Lookup(name)
}

func undeclared(node ast.Node, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("typechecker: undeclared variable %s", name),
		Node:    node,
	}
}

func (c *Checker) checkExpression(expr ast.Expression) ([]Diagnostic, Type) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return nil, intType
	case *ast.StringLiteral:
		return nil, stringType
	case *ast.BooleanLiteral:
		return nil, boolType
	case *ast.Identifier:
		typ, ok := c.lookup(e.Name)
		if !ok {
			return []Diagnostic{undeclared(e, e.Name)}, UnknownType{}
		}
		return nil, typ
	case *ast.UnaryExpression:
		return c.checkUnaryExpression(e)
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(e)
	default:
		return []Diagnostic{{Message: fmt.Sprintf("typechecker: unsupported expression %T", expr), Node: expr}}, UnknownType{}
	}
}
