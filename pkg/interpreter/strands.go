package interpreter

import (
	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

// evaluateStrandExpression schedules the strand body and returns its
// handle immediately. The body runs in a child of the spawning scope,
// so it sees (and shares) captured bindings.
func (i *Interpreter) evaluateStrandExpression(expr *ast.StrandExpression, env *runtime.Environment) (runtime.Value, error) {
	handle := runtime.NewStrandHandle()
	strandEnv := runtime.NewEnvironment(env)
	i.executor.Submit(func() (runtime.Value, *runtime.Error) {
		result, err := i.evaluateStatements(expr.Body, strandEnv)
		if err != nil {
			// A return inside the strand body resolves the strand with
			// its value; it never escapes the strand boundary.
			if ret, ok := err.(returnSignal); ok {
				return ret.value, nil
			}
			if rerr, ok := asRuntimeError(err); ok {
				return nil, rerr
			}
			return nil, runtime.NewError(runtime.ErrStrandPropagated, "strand failed: %v", err)
		}
		return result, nil
	}, handle)
	return handle, nil
}

// evaluateAwaitExpression blocks on a strand handle. Awaiting a settled
// handle is idempotent; awaiting any other value yields it unchanged.
func (i *Interpreter) evaluateAwaitExpression(expr *ast.AwaitExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(expr.Expression, env)
	if err != nil {
		return nil, err
	}
	handle, ok := val.(*runtime.StrandHandleValue)
	if !ok {
		return val, nil
	}
	result, strandErr, _ := handle.Await()
	if strandErr != nil {
		return nil, errAt(runtime.WrapStrand(strandErr), expr)
	}
	return result, nil
}
