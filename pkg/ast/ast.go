package ast

import (
	"strconv"

	"minipl/interpreter-go/pkg/token"
)

type NodeType string

const (
	NodeProgram          NodeType = "Program"
	NodeIdentifier       NodeType = "Identifier"
	NodeIntegerLiteral   NodeType = "IntegerLiteral"
	NodeStringLiteral    NodeType = "StringLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeUnaryExpression  NodeType = "UnaryExpression"
	NodeBinaryExpression NodeType = "BinaryExpression"
	NodeVarDeclare       NodeType = "VarDeclare"
	NodeVarInit          NodeType = "VarInit"
	NodeAssign           NodeType = "Assign"
	NodePrint            NodeType = "Print"
	NodeAssert           NodeType = "Assert"
	NodeRead             NodeType = "Read"
	NodeFor              NodeType = "For"
)

type Node interface {
	NodeType() NodeType
	Position() token.Position
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType       `json:"type"`
	Pos  token.Position `json:"pos"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType       { return n.Type }
func (n nodeImpl) Position() token.Position { return n.Pos }
func (nodeImpl) isNode()                    {}

// SetPosition records where the node starts in the source.
func (n *nodeImpl) SetPosition(pos token.Position) { n.Pos = pos }

// Marker interfaces. Both sets are closed: only this package can add
// variants, so every type switch over them is exhaustive by construction.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Declared types

type DeclaredType int

const (
	TypeBoolean DeclaredType = iota
	TypeInteger
	TypeString
)

func (t DeclaredType) String() string {
	switch t {
	case TypeBoolean:
		return "bool"
	case TypeInteger:
		return "int"
	case TypeString:
		return "string"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

func (t DeclaredType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TypeFromToken maps a type keyword to its declared type.
func TypeFromToken(kind token.Kind) (DeclaredType, bool) {
	switch kind {
	case token.BoolType:
		return TypeBoolean, true
	case token.IntType:
		return TypeInteger, true
	case token.StringType:
		return TypeString, true
	}
	return 0, false
}

// Operators

type UnaryOperator int

const (
	OpNot UnaryOperator = iota
)

func (op UnaryOperator) String() string {
	if op == OpNot {
		return "!"
	}
	return "?"
}

func (op UnaryOperator) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

type BinaryOperator int

const (
	OpPlus BinaryOperator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpEquals
	OpLessThan
	OpGreaterThan
	OpAnd
)

var binaryOperatorSymbols = [...]string{
	OpPlus:        "+",
	OpMinus:       "-",
	OpMultiply:    "*",
	OpDivide:      "/",
	OpEquals:      "=",
	OpLessThan:    "<",
	OpGreaterThan: ">",
	OpAnd:         "&",
}

func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binaryOperatorSymbols) {
		return binaryOperatorSymbols[op]
	}
	return "?"
}

func (op BinaryOperator) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// BinaryOperatorFromToken maps an operator token to its binary operator.
func BinaryOperatorFromToken(kind token.Kind) (BinaryOperator, bool) {
	switch kind {
	case token.Plus:
		return OpPlus, true
	case token.Minus:
		return OpMinus, true
	case token.Multiply:
		return OpMultiply, true
	case token.Divide:
		return OpDivide, true
	case token.Equals:
		return OpEquals, true
	case token.LessThan:
		return OpLessThan, true
	case token.GreaterThan:
		return OpGreaterThan, true
	case token.And:
		return OpAnd, true
	}
	return 0, false
}

// Program

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int32 `json:"value"`
}

func NewIntegerLiteral(value int32) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression     `json:"left"`
	Operator BinaryOperator `json:"operator"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(left Expression, operator BinaryOperator, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Left: left, Operator: operator, Right: right}
}

// Statements

// VarDeclare introduces a variable without assigning it.
type VarDeclare struct {
	nodeImpl
	statementMarker

	Name string       `json:"name"`
	Type DeclaredType `json:"declaredType"`
}

func NewVarDeclare(name string, typ DeclaredType) *VarDeclare {
	return &VarDeclare{nodeImpl: newNodeImpl(NodeVarDeclare), Name: name, Type: typ}
}

// VarInit declares a variable and assigns its initial value.
type VarInit struct {
	nodeImpl
	statementMarker

	Name  string       `json:"name"`
	Type  DeclaredType `json:"declaredType"`
	Value Expression   `json:"value"`
}

func NewVarInit(name string, typ DeclaredType, value Expression) *VarInit {
	return &VarInit{nodeImpl: newNodeImpl(NodeVarInit), Name: name, Type: typ, Value: value}
}

type Assign struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssign(name string, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type Print struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewPrint(value Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

type Assert struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
}

func NewAssert(condition Expression) *Assert {
	return &Assert{nodeImpl: newNodeImpl(NodeAssert), Condition: condition}
}

type Read struct {
	nodeImpl
	statementMarker

	Name string `json:"name"`
}

func NewRead(name string) *Read {
	return &Read{nodeImpl: newNodeImpl(NodeRead), Name: name}
}

// For iterates Variable over the inclusive range [Start, End].
type For struct {
	nodeImpl
	statementMarker

	Variable string      `json:"variable"`
	Start    Expression  `json:"start"`
	End      Expression  `json:"end"`
	Body     []Statement `json:"body"`
}

func NewFor(variable string, start, end Expression, body []Statement) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Variable: variable, Start: start, End: end, Body: body}
}
