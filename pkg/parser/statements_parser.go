package parser

import (
	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/token"
)

func (p *Parser) parseStatement() (ast.Statement, *ParseError) {
	switch p.cur.Kind {
	case token.Var:
		return p.parseVarStatement()
	case token.Identifier:
		return p.parseAssignStatement()
	case token.For:
		return p.parseForStatement()
	case token.Read:
		return p.parseReadStatement()
	case token.Print:
		return p.parsePrintStatement()
	case token.Assert:
		return p.parseAssertStatement()
	default:
		return nil, p.errorAtCurrent(UnexpectedToken)
	}
}

func (p *Parser) parseIdentifierName() (string, *ParseError) {
	if !p.curIs(token.Identifier) {
		return "", p.errorAtCurrent(ExpectedIdentifier)
	}
	name := p.cur.Literal
	p.advance()
	return name, nil
}

// var <ident> : <type> [:= <expr>] ;
func (p *Parser) parseVarStatement() (ast.Statement, *ParseError) {
	pos := p.cur.Pos
	p.advance()

	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon, ExpectedColon); err != nil {
		return nil, err
	}
	typ, ok := ast.TypeFromToken(p.cur.Kind)
	if !ok {
		return nil, p.errorAtCurrent(ExpectedType)
	}
	p.advance()

	if p.curIs(token.Semicolon) {
		p.advance()
		stmt := ast.NewVarDeclare(name, typ)
		stmt.SetPosition(pos)
		return stmt, nil
	}
	if err := p.expect(token.Assign, ExpectedAssignment); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ExpectedSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewVarInit(name, typ, value)
	stmt.SetPosition(pos)
	return stmt, nil
}

// <ident> := <expr> ;
func (p *Parser) parseAssignStatement() (ast.Statement, *ParseError) {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.advance()

	if err := p.expect(token.Assign, ExpectedAssignment); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ExpectedSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewAssign(name, value)
	stmt.SetPosition(pos)
	return stmt, nil
}

// for <ident> in <expr> .. <expr> do <stmts> end for ;
func (p *Parser) parseForStatement() (ast.Statement, *ParseError) {
	pos := p.cur.Pos
	p.advance()

	variable, start, end, err := p.parseForHeader()
	if err != nil {
		p.skipLoop()
		return nil, err
	}

	body := []ast.Statement{}
	for !p.curIs(token.End) {
		if p.curIs(token.EOF) {
			return nil, newParseError(ExpectedEnd, p.cur)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.recover(token.End)
			continue
		}
		body = append(body, stmt)
	}
	p.advance()

	if err := p.expect(token.For, ExpectedFor); err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ExpectedSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewFor(variable, start, end, body)
	stmt.SetPosition(pos)
	return stmt, nil
}

// <ident> in <expr> .. <expr> do
func (p *Parser) parseForHeader() (string, ast.Expression, ast.Expression, *ParseError) {
	variable, err := p.parseIdentifierName()
	if err != nil {
		return "", nil, nil, err
	}
	if err := p.expect(token.In, ExpectedIn); err != nil {
		return "", nil, nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return "", nil, nil, err
	}
	if err := p.expect(token.Range, ExpectedRange); err != nil {
		return "", nil, nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return "", nil, nil, err
	}
	if err := p.expect(token.Do, ExpectedDo); err != nil {
		return "", nil, nil, err
	}
	return variable, start, end, nil
}

// read <ident> ;
func (p *Parser) parseReadStatement() (ast.Statement, *ParseError) {
	pos := p.cur.Pos
	p.advance()

	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ExpectedSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewRead(name)
	stmt.SetPosition(pos)
	return stmt, nil
}

// print <expr> ;
func (p *Parser) parsePrintStatement() (ast.Statement, *ParseError) {
	pos := p.cur.Pos
	p.advance()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ExpectedSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewPrint(value)
	stmt.SetPosition(pos)
	return stmt, nil
}

// assert ( <expr> ) ;
func (p *Parser) parseAssertStatement() (ast.Statement, *ParseError) {
	pos := p.cur.Pos
	p.advance()

	if err := p.expect(token.LeftParen, ExpectedOpeningParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RightParen, ExpectedClosingParen); err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ExpectedSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewAssert(cond)
	stmt.SetPosition(pos)
	return stmt, nil
}
