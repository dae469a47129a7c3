package interpreter

import (
	"fmt"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case ast.Expression:
		return i.evaluateExpression(n, env)
	case *ast.LetDeclaration:
		return i.evaluateDeclaration(n, n.Name, n.Value, false, env)
	case *ast.VarDeclaration:
		return i.evaluateDeclaration(n, n.Name, n.Value, true, env)
	case *ast.ConstDeclaration:
		return i.evaluateDeclaration(n, n.Name, n.Value, false, env)
	case *ast.FunctionDeclaration:
		fn := &runtime.FunctionValue{
			Name:    n.ID.Name,
			Params:  n.Params,
			Body:    n.Body,
			Closure: env,
		}
		if err := env.Define(n.ID.Name, fn, false); err != nil {
			return nil, errAt(err, n)
		}
		return runtime.NilValue{}, nil
	case *ast.ReturnStatement:
		var result runtime.Value = runtime.NilValue{}
		if n.Argument != nil {
			val, err := i.evaluateExpression(n.Argument, env)
			if err != nil {
				return nil, err
			}
			result = val
		}
		return nil, returnSignal{value: result}
	case *ast.ImportStatement:
		// Module resolution happens outside the core.
		return runtime.NilValue{}, nil
	case *ast.CapabilityRequest:
		// Recognized but not enforced here.
		return runtime.NilValue{}, nil
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateDeclaration(node ast.Node, name *ast.Identifier, value ast.Expression, mutable bool, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Define(name.Name, val, mutable); err != nil {
		return nil, errAt(err, node)
	}
	return runtime.NilValue{}, nil
}

// evaluateStatements runs a statement sequence in the given scope and
// yields the last statement's value, Nil for an empty sequence.
func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range stmts {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (runtime.Value, error) {
	iterable, err := i.evaluateExpression(loop.Iterable, env)
	if err != nil {
		return nil, err
	}

	var result runtime.Value = runtime.NilValue{}
	runBody := func(element runtime.Value) error {
		// Fresh scope per iteration: closures formed inside the body
		// capture distinct bindings.
		iterEnv := runtime.NewEnvironment(env)
		if defErr := iterEnv.Define(loop.Variable.Name, element, false); defErr != nil {
			return errAt(defErr, loop)
		}
		val, bodyErr := i.evaluateStatements(loop.Body, iterEnv)
		if bodyErr != nil {
			return bodyErr
		}
		result = val
		return nil
	}

	switch it := iterable.(type) {
	case *runtime.ListValue:
		for _, el := range it.Elements {
			if err := runBody(el); err != nil {
				return nil, err
			}
		}
	case runtime.RangeValue:
		for v := it.Start; v < it.End; v++ {
			if err := runBody(runtime.IntValue{Val: v}); err != nil {
				return nil, err
			}
		}
	case runtime.StringValue:
		for _, r := range it.Val {
			if err := runBody(runtime.StringValue{Val: string(r)}); err != nil {
				return nil, err
			}
		}
	case *runtime.MapValue:
		for _, key := range it.Keys() {
			if err := runBody(runtime.StringValue{Val: key}); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errAt(runtime.NewError(runtime.ErrTypeMismatch, "value of kind %s is not iterable", iterable.Kind()), loop)
	}
	return result, nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return result, nil
		}
		// The body shares the enclosing scope so var reassignment can
		// drive termination.
		val, err := i.evaluateStatements(loop.Body, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
}
