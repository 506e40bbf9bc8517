package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"minipl/interpreter-go/pkg/ast"
	"minipl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	var err error
	switch n := node.(type) {
	case *ast.VarDeclare:
		err = i.evaluateVarDeclare(n)
	case *ast.VarInit:
		err = i.evaluateVarInit(n)
	case *ast.Assign:
		err = i.evaluateAssign(n)
	case *ast.Print:
		err = i.evaluatePrint(n)
	case *ast.Read:
		err = i.evaluateRead(n)
	case *ast.Assert:
		err = i.evaluateAssert(n)
	case *ast.For:
		err = i.evaluateFor(n)
	default:
		return fmt.Errorf("interpreter: unsupported statement %T", node)
	}
	if err != nil {
		return attachPosition(err, node.Position())
	}
	return nil
}

func (i *Interpreter) evaluateVarDeclare(stmt *ast.VarDeclare) error {
	if err := i.global.Declare(stmt.Name, stmt.Type, nil); err != nil {
		return alreadyInitialized(stmt.Name)
	}
	return nil
}

func (i *Interpreter) evaluateVarInit(stmt *ast.VarInit) error {
	if _, exists := i.global.Lookup(stmt.Name); exists {
		return alreadyInitialized(stmt.Name)
	}
	val, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return err
	}
	if !runtime.Conforms(stmt.Type, val) {
		return mismatched("cannot initialize %s variable %s with %s", stmt.Type, stmt.Name, runtime.TypeOf(val))
	}
	if err := i.global.Declare(stmt.Name, stmt.Type, val); err != nil {
		return alreadyInitialized(stmt.Name)
	}
	return nil
}

func (i *Interpreter) evaluateAssign(stmt *ast.Assign) error {
	binding, ok := i.global.Lookup(stmt.Name)
	if !ok {
		return notInitialized(stmt.Name)
	}
	val, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return err
	}
	if !runtime.Conforms(binding.Type, val) {
		return mismatched("cannot assign %s to %s variable %s", runtime.TypeOf(val), binding.Type, stmt.Name)
	}
	return i.global.Set(stmt.Name, val)
}

func (i *Interpreter) evaluatePrint(stmt *ast.Print) error {
	val, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(i.out, runtime.Format(val)); err != nil {
		return ioFailure(err)
	}
	return nil
}

func (i *Interpreter) evaluateRead(stmt *ast.Read) error {
	binding, ok := i.global.Lookup(stmt.Name)
	if !ok {
		return notInitialized(stmt.Name)
	}
	line, err := i.readLine()
	if err != nil {
		return ioFailure(err)
	}

	var val runtime.Value
	switch binding.Type {
	case ast.TypeString:
		val = runtime.StringValue{Val: line}
	case ast.TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil {
			return mismatched("cannot read %q into int variable %s", line, stmt.Name)
		}
		val = runtime.IntegerValue{Val: int32(n)}
	default:
		return mismatched("cannot read into %s variable %s", binding.Type, stmt.Name)
	}
	return i.global.Set(stmt.Name, val)
}

// readLine returns the next input line without its terminator. A final line
// with no newline is still returned; EOF before any data is an error.
func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (i *Interpreter) evaluateAssert(stmt *ast.Assert) error {
	val, err := i.evaluateExpression(stmt.Condition)
	if err != nil {
		return err
	}
	cond, ok := val.(runtime.BoolValue)
	if !ok {
		return mismatched("assert requires bool, got %s", runtime.TypeOf(val))
	}
	if cond.Val {
		return nil
	}
	if _, err := fmt.Fprintf(i.out, "Assertion failed: %s\n", stmt.Condition); err != nil {
		return ioFailure(err)
	}
	return nil
}

func (i *Interpreter) evaluateFor(loop *ast.For) error {
	start, err := i.evaluateLoopBound(loop.Start)
	if err != nil {
		return err
	}
	end, err := i.evaluateLoopBound(loop.End)
	if err != nil {
		return err
	}
	binding, ok := i.global.Lookup(loop.Variable)
	if !ok {
		return notInitialized(loop.Variable)
	}
	if binding.Type != ast.TypeInteger {
		return mismatched("loop variable %s must be int, is %s", loop.Variable, binding.Type)
	}

	// Counting in int64 keeps an end bound of MaxInt32 from wrapping.
	for n := int64(start); n <= int64(end); n++ {
		if err := i.global.Set(loop.Variable, runtime.IntegerValue{Val: int32(n)}); err != nil {
			return err
		}
		if err := i.evaluateStatements(loop.Body); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateLoopBound(expr ast.Expression) (int32, error) {
	val, err := i.evaluateExpression(expr)
	if err != nil {
		return 0, err
	}
	n, ok := val.(runtime.IntegerValue)
	if !ok {
		return 0, mismatched("loop bound must be int, got %s", runtime.TypeOf(val))
	}
	return n.Val, nil
}
