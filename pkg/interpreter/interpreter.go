package interpreter

import (
	"fmt"
	"io"
	"os"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Flo AST nodes.
type Interpreter struct {
	global   *runtime.Environment
	executor Executor
	out      io.Writer
}

// New returns an interpreter backed by the goroutine executor, printing
// to stdout.
func New() *Interpreter {
	return NewWith(NewGoroutineExecutor(), os.Stdout)
}

// NewWith lets callers choose the strand executor and the print sink.
func NewWith(executor Executor, out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		global:   runtime.NewRootEnvironment(Builtins()),
		executor: executor,
		out:      out,
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Executor exposes the scheduler, mainly so tests can flush it.
func (i *Interpreter) Executor() Executor {
	return i.executor
}

// EvaluateModule executes a module and returns the last evaluated value
// along with the environment it ran in. Uncaught run-time faults surface
// as *runtime.Error.
func (i *Interpreter) EvaluateModule(module *ast.Module) (runtime.Value, *runtime.Environment, error) {
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range module.Statements {
		val, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil, nil, fmt.Errorf("return outside function")
			}
			return nil, i.global, err
		}
		last = val
	}
	return last, i.global, nil
}

// returnSignal carries an explicit return toward the nearest function or
// strand boundary. It is control flow, not an error: rescue never
// catches it.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string { return "return" }

func asRuntimeError(err error) (*runtime.Error, bool) {
	rerr, ok := err.(*runtime.Error)
	return rerr, ok
}

// errAt stamps the node's source position onto a propagating runtime
// error that does not carry one yet.
func errAt(err error, node ast.Node) error {
	if rerr, ok := asRuntimeError(err); ok {
		line, col := node.Pos()
		rerr.At(line, col)
	}
	return err
}
