package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int32) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Operator helpers.

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(OpNot, operand)
}

func Bin(left Expression, op BinaryOperator, right Expression) *BinaryExpression {
	return NewBinaryExpression(left, op, right)
}

// Statement helpers.

func Declare(name string, typ DeclaredType) *VarDeclare {
	return NewVarDeclare(name, typ)
}

func Init(name string, typ DeclaredType, value Expression) *VarInit {
	return NewVarInit(name, typ, value)
}

func Set(name string, value Expression) *Assign {
	return NewAssign(name, value)
}

func PrintStmt(value Expression) *Print {
	return NewPrint(value)
}

func AssertStmt(condition Expression) *Assert {
	return NewAssert(condition)
}

func ReadStmt(name string) *Read {
	return NewRead(name)
}

func Loop(variable string, start, end Expression, body ...Statement) *For {
	return NewFor(variable, start, end, body)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
