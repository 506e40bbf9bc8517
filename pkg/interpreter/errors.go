package interpreter

import (
	"errors"
	"fmt"

	"minipl/interpreter-go/pkg/token"
)

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	MismatchedTypes ErrorKind = iota
	UnsupportedOperation
	VariableNotInitialized
	VariableAlreadyInitialized
	IOError
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case MismatchedTypes:
		return "MismatchedTypes"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	case VariableNotInitialized:
		return "VariableNotInitialized"
	case VariableAlreadyInitialized:
		return "VariableAlreadyInitialized"
	case IOError:
		return "IOError"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// RuntimeError aborts program evaluation. Name is set for the variable
// errors, Err for IOError, and Pos once the failing statement is known.
type RuntimeError struct {
	Kind   ErrorKind
	Name   string
	Detail string
	Pos    token.Position
	Err    error
}

func (e *RuntimeError) Error() string {
	msg := e.Message()
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}
	return msg
}

// Message is the error text without the statement position.
func (e *RuntimeError) Message() string {
	var msg string
	switch e.Kind {
	case MismatchedTypes:
		msg = "Mismatched types"
	case UnsupportedOperation:
		msg = "Unsupported operation"
	case VariableNotInitialized:
		msg = fmt.Sprintf("Variable %s not initialized", e.Name)
	case VariableAlreadyInitialized:
		msg = fmt.Sprintf("Variable %s is already initialized", e.Name)
	case IOError:
		msg = "IO error"
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	case DivisionByZero:
		msg = "Division by zero"
	default:
		msg = e.Kind.String()
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rt *RuntimeError
	return errors.As(err, &rt) && rt.Kind == kind
}

func mismatched(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: MismatchedTypes, Detail: fmt.Sprintf(format, args...)}
}

func unsupported(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: UnsupportedOperation, Detail: fmt.Sprintf(format, args...)}
}

func notInitialized(name string) *RuntimeError {
	return &RuntimeError{Kind: VariableNotInitialized, Name: name}
}

func alreadyInitialized(name string) *RuntimeError {
	return &RuntimeError{Kind: VariableAlreadyInitialized, Name: name}
}

func ioFailure(err error) *RuntimeError {
	return &RuntimeError{Kind: IOError, Err: err}
}

// attachPosition stamps pos onto a runtime error that has none yet, so the
// innermost failing statement wins.
func attachPosition(err error, pos token.Position) error {
	var rt *RuntimeError
	if errors.As(err, &rt) && !rt.Pos.IsValid() {
		rt.Pos = pos
	}
	return err
}
