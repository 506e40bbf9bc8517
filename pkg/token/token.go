package token

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Identifier
	IntegerConstant
	StringValue

	Plus
	Minus
	Multiply
	Divide
	Equals
	LessThan
	GreaterThan
	And
	Not

	Assign
	Colon
	Semicolon
	LeftParen
	RightParen
	Range

	keywordStart
	Var
	Print
	For
	In
	Do
	End
	True
	False
	BoolType
	StringType
	IntType
	Assert
	Read
	keywordEnd
)

var kindNames = [...]string{
	Illegal: "illegal",
	EOF:     "EOF",

	Identifier:      "identifier",
	IntegerConstant: "integer",
	StringValue:     "string",

	Plus:        "+",
	Minus:       "-",
	Multiply:    "*",
	Divide:      "/",
	Equals:      "=",
	LessThan:    "<",
	GreaterThan: ">",
	And:         "&",
	Not:         "!",

	Assign:     ":=",
	Colon:      ":",
	Semicolon:  ";",
	LeftParen:  "(",
	RightParen: ")",
	Range:      "..",

	Var:        "var",
	Print:      "print",
	For:        "for",
	In:         "in",
	Do:         "do",
	End:        "end",
	True:       "true",
	False:      "false",
	BoolType:   "bool",
	StringType: "string",
	IntType:    "int",
	Assert:     "assert",
	Read:       "read",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordStart-1)
	for k := keywordStart + 1; k < keywordEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

// Lookup maps an identifier lexeme to its keyword kind, or Identifier.
func Lookup(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// Position is a 1-based line/column location plus a byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token is a single lexeme. Identifier, IntegerConstant and StringValue carry
// their payload in Literal; Illegal carries the offending source text.
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position
}

// New builds a token without position information.
func New(kind Kind, literal string) Token {
	return Token{Kind: kind, Literal: literal}
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// String returns the display form of the token, which reproduces the source
// lexeme for everything except string literals (re-quoted) and EOF.
func (t Token) String() string {
	switch t.Kind {
	case Identifier, IntegerConstant, Illegal:
		return t.Literal
	case StringValue:
		return Quote(t.Literal)
	default:
		return t.Kind.String()
	}
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

// Quote renders s as a string literal using the language's escape set.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
