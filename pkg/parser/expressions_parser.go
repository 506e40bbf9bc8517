package parser

import (
	"strconv"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/token"
)

// parseExpression handles
//
//	expr    := "!" expr | operand [binop expr]
//
// Binary chains nest to the right with no precedence, so `1 + 2 * 3` is
// `1 + (2 * 3)`. Parentheses are the only way to group to the left.
func (p *Parser) parseExpression() (ast.Expression, *ParseError) {
	if p.curIs(token.Not) {
		pos := p.cur.Pos
		p.advance()
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expr := ast.NewUnaryExpression(ast.OpNot, operand)
		expr.SetPosition(pos)
		return expr, nil
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op, ok := ast.BinaryOperatorFromToken(p.cur.Kind)
	if !ok {
		// The caller reports whatever token was expected to follow.
		return left, nil
	}
	p.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr := ast.NewBinaryExpression(left, op, right)
	expr.SetPosition(left.Position())
	return expr, nil
}

func (p *Parser) parseOperand() (ast.Expression, *ParseError) {
	tok := p.cur
	switch tok.Kind {
	case token.Identifier:
		p.advance()
		expr := ast.NewIdentifier(tok.Literal)
		expr.SetPosition(tok.Pos)
		return expr, nil
	case token.IntegerConstant:
		n, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return nil, newParseError(IntegerOutOfRange, tok)
		}
		p.advance()
		expr := ast.NewIntegerLiteral(int32(n))
		expr.SetPosition(tok.Pos)
		return expr, nil
	case token.StringValue:
		p.advance()
		expr := ast.NewStringLiteral(tok.Literal)
		expr.SetPosition(tok.Pos)
		return expr, nil
	case token.True, token.False:
		p.advance()
		expr := ast.NewBooleanLiteral(tok.Kind == token.True)
		expr.SetPosition(tok.Pos)
		return expr, nil
	case token.LeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RightParen, ExpectedClosingParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorAtCurrent(ExpectedOperand)
	}
}
