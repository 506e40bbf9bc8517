package parser

import (
	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/lexer"
	"minipl/interpreter-go/pkg/token"
)

// Parser is a recursive-descent parser over a lexer's token stream. It keeps
// one token of lookahead and collects every syntax error it encounters,
// resynchronizing after each one.
type Parser struct {
	lexer *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []*ParseError
	// resynced is set when a statement parser already skipped past its own
	// malformed input, so the caller must not skip again.
	resynced bool
}

// New returns a parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}
	p.advance()
	p.advance()
	return p
}

// Parse tokenizes and parses source in one step.
func Parse(source string) (*ast.Program, []*ParseError) {
	return New(lexer.New(source)).ParseProgram()
}

// ParseProgram parses statements until EOF. The returned program contains
// every statement that parsed cleanly; a non-empty error slice means the
// program must not be executed.
func (p *Parser) ParseProgram() (*ast.Program, []*ParseError) {
	program := ast.NewProgram([]ast.Statement{})
	program.SetPosition(p.cur.Pos)
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.recover()
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, p.errors
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) curIs(kind token.Kind) bool {
	return p.cur.Is(kind)
}

// expect consumes the current token when it has the given kind and reports
// errKind against it otherwise.
func (p *Parser) expect(kind token.Kind, errKind ErrorKind) *ParseError {
	if !p.curIs(kind) {
		return p.errorAtCurrent(errKind)
	}
	p.advance()
	return nil
}

func (p *Parser) errorAtCurrent(kind ErrorKind) *ParseError {
	if p.curIs(token.Illegal) {
		return newParseError(IllegalToken, p.cur)
	}
	return newParseError(kind, p.cur)
}

// recover moves past a failed statement unless the statement parser already
// did so itself.
func (p *Parser) recover(stop ...token.Kind) {
	if p.resynced {
		p.resynced = false
		return
	}
	p.synchronize(stop...)
}

// synchronize skips tokens up to and including the next semicolon. Any kinds
// in stop end the skip without being consumed, which lets a loop body give
// its closing `end` back to the enclosing for statement.
func (p *Parser) synchronize(stop ...token.Kind) {
	for !p.curIs(token.EOF) {
		if p.curIs(token.Semicolon) {
			p.advance()
			return
		}
		for _, kind := range stop {
			if p.curIs(kind) {
				return
			}
		}
		p.advance()
	}
}

// skipLoop recovers from an error in a for header. When a `do` shows up before
// the next semicolon the whole block is skipped, counting nested do/end pairs,
// along with its trailing `for ;`. Otherwise it behaves like synchronize.
func (p *Parser) skipLoop() {
	p.resynced = true
	for !p.curIs(token.Do) {
		switch {
		case p.curIs(token.EOF):
			return
		case p.curIs(token.Semicolon):
			p.advance()
			return
		}
		p.advance()
	}
	depth := 0
	for !p.curIs(token.EOF) {
		switch {
		case p.curIs(token.Do):
			depth++
		case p.curIs(token.End):
			depth--
		}
		p.advance()
		if depth == 0 {
			break
		}
	}
	if p.curIs(token.For) {
		p.advance()
	}
	if p.curIs(token.Semicolon) {
		p.advance()
	}
}
