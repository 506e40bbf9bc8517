package runtime

import (
	"fmt"
	"strconv"

	"minipl/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindBool Kind = iota
	KindInteger
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// IntegerValue is a signed 32-bit integer. Arithmetic wraps on overflow.
type IntegerValue struct {
	Val int32
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// Format renders a value the way print shows it: booleans as true/false,
// integers in decimal and strings raw, without quotes.
func Format(v Value) string {
	switch val := v.(type) {
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case IntegerValue:
		return strconv.FormatInt(int64(val.Val), 10)
	case StringValue:
		return val.Val
	case nil:
		return "<uninitialized>"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

// TypeOf maps a value to the declared type it conforms to.
func TypeOf(v Value) ast.DeclaredType {
	switch v.Kind() {
	case KindBool:
		return ast.TypeBoolean
	case KindInteger:
		return ast.TypeInteger
	default:
		return ast.TypeString
	}
}

// Conforms reports whether v may be stored in a variable of type typ.
func Conforms(typ ast.DeclaredType, v Value) bool {
	return v != nil && TypeOf(v) == typ
}
