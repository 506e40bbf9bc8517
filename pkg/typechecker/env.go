package typechecker

import "minipl/interpreter-go/pkg/ast"

// Environment records the declared type of every variable seen so far. The
// language has a single global scope, so there is no parent chain.
type Environment struct {
	symbols map[string]Type
	decls   map[string]ast.Node
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		symbols: make(map[string]Type),
		decls:   make(map[string]ast.Node),
	}
}

// Define binds a name to a type, remembering the declaring node.
func (e *Environment) Define(name string, typ Type, decl ast.Node) {
	e.symbols[name] = typ
	e.decls[name] = decl
}

// Lookup returns the declared type of name.
func (e *Environment) Lookup(name string) (Type, bool) {
	typ, ok := e.symbols[name]
	return typ, ok
}

// Declaration returns the node that declared name.
func (e *Environment) Declaration(name string) ast.Node {
	return e.decls[name]
}
