package typechecker

import (
	"fmt"

	"minipl/interpreter-go/pkg/ast"
)

func (c *Checker) checkUnaryExpression(expr *ast.UnaryExpression) ([]Diagnostic, Type) {
	diags, operandType := c.checkExpression(expr.Operand)
	if !typeAssignable(operandType, boolType) {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("typechecker: unary '%s' requires boolean operand (got %s)", expr.Operator, typeName(operandType)),
			Node:    expr,
		})
	}
	return diags, boolType
}

func (c *Checker) checkBinaryExpression(expr *ast.BinaryExpression) ([]Diagnostic, Type) {
	leftDiags, leftType := c.checkExpression(expr.Left)
	rightDiags, rightType := c.checkExpression(expr.Right)
	diags := append(leftDiags, rightDiags...)

	if isUnknownType(leftType) || isUnknownType(rightType) {
		return diags, resultTypeForUnknown(expr.Operator, leftType, rightType)
	}
	if leftType != rightType {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("typechecker: mismatched operand types %s %s %s", leftType.Name(), expr.Operator, rightType.Name()),
			Node:    expr,
		})
		return diags, UnknownType{}
	}
	result, ok := binaryResultType(expr.Operator, leftType.(PrimitiveType).Kind)
	if !ok {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("typechecker: operator '%s' not supported for %s operands", expr.Operator, leftType.Name()),
			Node:    expr,
		})
		return diags, UnknownType{}
	}
	return diags, result
}

// binaryResultType lists every supported operator/operand pairing.
func binaryResultType(op ast.BinaryOperator, operand ast.DeclaredType) (Type, bool) {
	switch op {
	case ast.OpEquals, ast.OpLessThan, ast.OpGreaterThan:
		return boolType, true
	case ast.OpPlus:
		switch operand {
		case ast.TypeInteger:
			return intType, true
		case ast.TypeString:
			return stringType, true
		}
	case ast.OpMinus, ast.OpMultiply, ast.OpDivide:
		if operand == ast.TypeInteger {
			return intType, true
		}
	case ast.OpAnd:
		if operand == ast.TypeBoolean {
			return boolType, true
		}
	}
	return nil, false
}

// Comparisons and & are bool whatever their operands; arithmetic follows the
// known side when there is one.
func resultTypeForUnknown(op ast.BinaryOperator, left, right Type) Type {
	switch op {
	case ast.OpEquals, ast.OpLessThan, ast.OpGreaterThan, ast.OpAnd:
		return boolType
	case ast.OpMinus, ast.OpMultiply, ast.OpDivide:
		return intType
	}
	if !isUnknownType(left) {
		return left
	}
	if !isUnknownType(right) {
		return right
	}
	return UnknownType{}
}
