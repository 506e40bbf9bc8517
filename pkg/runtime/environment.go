package runtime

import (
	"errors"
	"fmt"
	"sort"

	"minipl/interpreter-go/pkg/ast"
)

var (
	// ErrAlreadyDeclared is returned when a name is declared twice.
	ErrAlreadyDeclared = errors.New("variable already declared")
	// ErrUndeclared is returned when a name was never declared.
	ErrUndeclared = errors.New("variable not declared")
)

// Binding pairs a variable's declared type with its current value. A nil
// Value means the variable was declared without an initializer.
type Binding struct {
	Type  ast.DeclaredType
	Value Value
}

// Initialized reports whether the binding holds a value.
func (b Binding) Initialized() bool {
	return b.Value != nil
}

// Environment is the program's single flat variable table. Loop variables
// are ordinary entries and nothing is ever removed.
type Environment struct {
	values map[string]Binding
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Binding)}
}

// Declare inserts a new binding. value may be nil.
func (e *Environment) Declare(name string, typ ast.DeclaredType, value Value) error {
	if _, ok := e.values[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyDeclared, name)
	}
	e.values[name] = Binding{Type: typ, Value: value}
	return nil
}

// Lookup returns the binding for name.
func (e *Environment) Lookup(name string) (Binding, bool) {
	b, ok := e.values[name]
	return b, ok
}

// Set replaces the value of an existing binding, keeping its declared type.
func (e *Environment) Set(name string, value Value) error {
	b, ok := e.values[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUndeclared, name)
	}
	b.Value = value
	e.values[name] = b
	return nil
}

// Len reports the number of declared variables.
func (e *Environment) Len() int {
	return len(e.values)
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
