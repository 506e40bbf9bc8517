package typechecker

import "minipl/interpreter-go/pkg/ast"

// Type is the static type assigned to an expression.
type Type interface {
	Name() string
}

// PrimitiveType is one of the three declarable types.
type PrimitiveType struct {
	Kind ast.DeclaredType
}

func (t PrimitiveType) Name() string { return t.Kind.String() }

// UnknownType marks an expression whose type could not be determined because
// an error was already reported for it. It is compatible with everything so
// one mistake does not cascade into several diagnostics.
type UnknownType struct{}

func (UnknownType) Name() string { return "unknown" }

var (
	boolType   = PrimitiveType{Kind: ast.TypeBoolean}
	intType    = PrimitiveType{Kind: ast.TypeInteger}
	stringType = PrimitiveType{Kind: ast.TypeString}
)

func isUnknownType(t Type) bool {
	_, ok := t.(UnknownType)
	return ok || t == nil
}

// typeAssignable reports whether a value of type from may be stored where
// type to is declared.
func typeAssignable(from, to Type) bool {
	if isUnknownType(from) || isUnknownType(to) {
		return true
	}
	return from == to
}

func typeName(t Type) string {
	if t == nil {
		return "unknown"
	}
	return t.Name()
}
