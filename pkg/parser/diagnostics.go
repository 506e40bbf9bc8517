package parser

import (
	"fmt"
	"strings"

	"minipl/interpreter-go/pkg/token"
)

// ErrorKind classifies a syntax error by the construct the parser expected.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	IllegalToken
	ExpectedColon
	ExpectedType
	ExpectedAssignment
	ExpectedIdentifier
	ExpectedOperand
	ExpectedSemicolon
	ExpectedOpeningParen
	ExpectedClosingParen
	ExpectedIn
	ExpectedDo
	ExpectedRange
	ExpectedEnd
	ExpectedFor
	IntegerOutOfRange
)

var errorKindNames = [...]string{
	UnexpectedToken:      "UnexpectedToken",
	IllegalToken:         "IllegalToken",
	ExpectedColon:        "ExpectedColon",
	ExpectedType:         "ExpectedType",
	ExpectedAssignment:   "ExpectedAssignment",
	ExpectedIdentifier:   "ExpectedIdentifier",
	ExpectedOperand:      "ExpectedOperand",
	ExpectedSemicolon:    "ExpectedSemicolon",
	ExpectedOpeningParen: "ExpectedOpeningParen",
	ExpectedClosingParen: "ExpectedClosingParen",
	ExpectedIn:           "ExpectedIn",
	ExpectedDo:           "ExpectedDo",
	ExpectedRange:        "ExpectedRange",
	ExpectedEnd:          "ExpectedEnd",
	ExpectedFor:          "ExpectedFor",
	IntegerOutOfRange:    "IntegerOutOfRange",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// expectation is the human-readable construct each kind asks for.
var expectation = map[ErrorKind]string{
	ExpectedColon:        ":",
	ExpectedType:         "type definition",
	ExpectedAssignment:   ":=",
	ExpectedIdentifier:   "identifier",
	ExpectedOperand:      "operand",
	ExpectedSemicolon:    ";",
	ExpectedOpeningParen: "(",
	ExpectedClosingParen: ")",
	ExpectedIn:           "in",
	ExpectedDo:           "do",
	ExpectedRange:        "..",
	ExpectedEnd:          "end",
	ExpectedFor:          "for",
}

// SourceLocation captures a source span for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func locationForToken(tok token.Token) SourceLocation {
	width := len(tok.String())
	if tok.Kind == token.EOF {
		width = 0
	}
	return SourceLocation{
		Line:      tok.Pos.Line,
		Column:    tok.Pos.Column,
		EndLine:   tok.Pos.Line,
		EndColumn: tok.Pos.Column + width,
	}
}

// ParseError names the construct the parser expected and the token it found.
type ParseError struct {
	Kind     ErrorKind
	Expected string
	Found    token.Token
	Location SourceLocation
}

func newParseError(kind ErrorKind, found token.Token) *ParseError {
	return &ParseError{
		Kind:     kind,
		Expected: expectation[kind],
		Found:    found,
		Location: locationForToken(found),
	}
}

func (e *ParseError) Error() string {
	return e.Location.String() + ": " + e.Message()
}

// Message is the error text without the source location.
func (e *ParseError) Message() string {
	switch e.Kind {
	case IllegalToken:
		return fmt.Sprintf("illegal token %s", e.Found)
	case IntegerOutOfRange:
		return fmt.Sprintf("integer constant %s out of range", e.Found)
	}
	if e.Expected == "" {
		return fmt.Sprintf("unexpected token %s", e.Found)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Found)
}

// Incomplete reports whether the error was caused by running out of input.
func (e *ParseError) Incomplete() bool {
	return e.Found.Kind == token.EOF
}

// ErrorList aggregates every syntax error found in one parse.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no syntax errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d syntax errors:", len(l))
	for _, err := range l {
		b.WriteString("\n- ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// IsIncomplete reports whether the only syntax problems are caused by input
// that ends too early, as happens while a statement is still being typed.
func IsIncomplete(errs []*ParseError) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		if !err.Incomplete() {
			return false
		}
	}
	return true
}
