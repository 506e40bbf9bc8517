package interpreter

import (
	"fmt"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		binding, ok := i.global.Lookup(n.Name)
		if !ok || !binding.Initialized() {
			return nil, notInitialized(n.Name)
		}
		return binding.Value, nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression %T", node)
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	b, ok := operand.(runtime.BoolValue)
	if !ok {
		return nil, mismatched("%s requires bool, got %s", expr.Operator, runtime.TypeOf(operand))
	}
	return runtime.BoolValue{Val: !b.Val}, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(expr.Operator, left, right)
}

// applyBinary dispatches on the operand pairing. Operands must share a type.
func applyBinary(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.IntegerValue:
		if r, ok := right.(runtime.IntegerValue); ok {
			return applyInteger(op, l.Val, r.Val)
		}
	case runtime.BoolValue:
		if r, ok := right.(runtime.BoolValue); ok {
			return applyBool(op, l.Val, r.Val)
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return applyString(op, l.Val, r.Val)
		}
	}
	return nil, mismatched("%s %s %s", runtime.TypeOf(left), op, runtime.TypeOf(right))
}

// Arithmetic wraps on int32 overflow, including MinInt32 / -1.
func applyInteger(op ast.BinaryOperator, l, r int32) (runtime.Value, error) {
	switch op {
	case ast.OpPlus:
		return runtime.IntegerValue{Val: l + r}, nil
	case ast.OpMinus:
		return runtime.IntegerValue{Val: l - r}, nil
	case ast.OpMultiply:
		return runtime.IntegerValue{Val: l * r}, nil
	case ast.OpDivide:
		if r == 0 {
			return nil, &RuntimeError{Kind: DivisionByZero}
		}
		return runtime.IntegerValue{Val: l / r}, nil
	case ast.OpEquals:
		return runtime.BoolValue{Val: l == r}, nil
	case ast.OpLessThan:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OpGreaterThan:
		return runtime.BoolValue{Val: l > r}, nil
	}
	return nil, unsupported("int %s int", op)
}

// Booleans order false before true.
func applyBool(op ast.BinaryOperator, l, r bool) (runtime.Value, error) {
	switch op {
	case ast.OpAnd:
		return runtime.BoolValue{Val: l && r}, nil
	case ast.OpEquals:
		return runtime.BoolValue{Val: l == r}, nil
	case ast.OpLessThan:
		return runtime.BoolValue{Val: !l && r}, nil
	case ast.OpGreaterThan:
		return runtime.BoolValue{Val: l && !r}, nil
	}
	return nil, unsupported("bool %s bool", op)
}

func applyString(op ast.BinaryOperator, l, r string) (runtime.Value, error) {
	switch op {
	case ast.OpPlus:
		return runtime.StringValue{Val: l + r}, nil
	case ast.OpEquals:
		return runtime.BoolValue{Val: l == r}, nil
	case ast.OpLessThan:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OpGreaterThan:
		return runtime.BoolValue{Val: l > r}, nil
	}
	return nil, unsupported("string %s string", op)
}
