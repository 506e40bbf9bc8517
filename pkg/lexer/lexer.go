package lexer

import (
	"strings"

	"minipl/interpreter-go/pkg/token"
)

// Lexer turns Mini-PL source text into a pull-based token stream.
type Lexer struct {
	input []byte

	// pos is the offset of the next byte to load into ch.
	pos  int
	line int
	col  int
	ch   byte // 0 once the input is exhausted
}

// New returns a lexer positioned at the start of source.
func New(source string) *Lexer {
	l := &Lexer{input: []byte(source), line: 1}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) atEnd() bool {
	return l.pos > len(l.input)
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos - 1}
}

// NextToken scans the next token. Once the input is exhausted every call
// returns EOF.
func (l *Lexer) NextToken() token.Token {
	if illegal, ok := l.skipTrivia(); !ok {
		return illegal
	}

	pos := l.position()
	if l.atEnd() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	ch := l.ch
	switch {
	case isIdentStart(ch):
		lit := l.readWhile(isIdentContinue)
		return token.Token{Kind: token.Lookup(lit), Literal: lit, Pos: pos}
	case isDigit(ch):
		return token.Token{Kind: token.IntegerConstant, Literal: l.readWhile(isDigit), Pos: pos}
	case ch == '"':
		return l.readString(pos)
	}

	l.advance()
	switch ch {
	case ':':
		if l.ch == '=' {
			l.advance()
			return token.Token{Kind: token.Assign, Literal: ":=", Pos: pos}
		}
		return token.Token{Kind: token.Colon, Literal: ":", Pos: pos}
	case '.':
		if l.ch == '.' {
			l.advance()
			return token.Token{Kind: token.Range, Literal: "..", Pos: pos}
		}
		return token.Token{Kind: token.Illegal, Literal: ".", Pos: pos}
	}

	if kind, ok := singleCharTokens[ch]; ok {
		return token.Token{Kind: kind, Literal: string(ch), Pos: pos}
	}
	return token.Token{Kind: token.Illegal, Literal: string(ch), Pos: pos}
}

// Tokenize drains the lexer, returning every token including the final EOF.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

var singleCharTokens = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Multiply,
	'/': token.Divide,
	';': token.Semicolon,
	'&': token.And,
	'!': token.Not,
	'(': token.LeftParen,
	')': token.RightParen,
	'=': token.Equals,
	'>': token.GreaterThan,
	'<': token.LessThan,
}

// skipTrivia consumes whitespace and comments. It reports false together with
// an Illegal token when a block comment is left open.
func (l *Lexer) skipTrivia() (token.Token, bool) {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.advance()
			}
		case l.ch == '/' && l.peek() == '*':
			if tok, ok := l.skipBlockComment(); !ok {
				return tok, false
			}
		default:
			return token.Token{}, true
		}
	}
	return token.Token{}, true
}

// skipBlockComment consumes a possibly nested /* ... */ comment.
func (l *Lexer) skipBlockComment() (token.Token, bool) {
	pos := l.position()
	start := l.pos - 1
	depth := 0
	for !l.atEnd() {
		switch {
		case l.ch == '/' && l.peek() == '*':
			depth++
			l.advance()
			l.advance()
		case l.ch == '*' && l.peek() == '/':
			depth--
			l.advance()
			l.advance()
			if depth == 0 {
				return token.Token{}, true
			}
		default:
			l.advance()
		}
	}
	return token.Token{Kind: token.Illegal, Literal: string(l.input[start:]), Pos: pos}, false
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.pos - 1
	for !l.atEnd() && pred(l.ch) {
		l.advance()
	}
	return string(l.input[start : l.pos-1])
}

// readString scans a string literal starting at the opening quote and returns
// its unescaped content. Unknown escapes and unterminated literals produce an
// Illegal token spanning the raw text.
func (l *Lexer) readString(pos token.Position) token.Token {
	start := l.pos - 1
	l.advance() // opening quote

	var b strings.Builder
	valid := true
	for {
		if l.atEnd() {
			return token.Token{Kind: token.Illegal, Literal: string(l.input[start:]), Pos: pos}
		}
		switch l.ch {
		case '"':
			l.advance()
			if !valid {
				return token.Token{Kind: token.Illegal, Literal: string(l.input[start : l.pos-1]), Pos: pos}
			}
			return token.Token{Kind: token.StringValue, Literal: b.String(), Pos: pos}
		case '\\':
			l.advance()
			if l.atEnd() {
				continue
			}
			switch l.ch {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				valid = false
			}
			l.advance()
		default:
			b.WriteByte(l.ch)
			l.advance()
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
