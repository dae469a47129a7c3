package interpreter

import (
	"fmt"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			return nil, errAt(err, n)
		}
		return val, nil
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.Assignment:
		value, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Set(n.Target.Name, value); err != nil {
			return nil, errAt(err, n)
		}
		return value, nil
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndex(n, env)
	case *ast.MemberAccess:
		obj, err := i.evaluateExpression(n.Object, env)
		if err != nil {
			return nil, err
		}
		return i.accessMember(obj, n.Member, n)
	case *ast.OptionalChain:
		obj, err := i.evaluateExpression(n.Object, env)
		if err != nil {
			return nil, err
		}
		if _, ok := obj.(runtime.NilValue); ok {
			return runtime.NilValue{}, nil
		}
		return i.accessMember(obj, n.Member, n)
	case *ast.ListLiteral:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateExpression(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return &runtime.ListValue{Elements: elements}, nil
	case *ast.MapLiteral:
		// Entries evaluate in order; a repeated key keeps the last value.
		m := runtime.NewMapValue()
		for _, entry := range n.Entries {
			val, err := i.evaluateExpression(entry.Value, env)
			if err != nil {
				return nil, err
			}
			m.Set(entry.Key, val)
		}
		return m, nil
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.MatchExpression:
		return i.evaluateMatchExpression(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.AttemptExpression:
		return i.evaluateAttemptExpression(n, env)
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{
			Name:    "<lambda>",
			Params:  n.Params,
			Body:    n.Body,
			Closure: env,
		}, nil
	case *ast.StrandExpression:
		return i.evaluateStrandExpression(n, env)
	case *ast.AwaitExpression:
		return i.evaluateAwaitExpression(n, env)
	case *ast.OptionExpression:
		if n.Variant == ast.VariantNone {
			return runtime.OptionValue{IsSome: false}, nil
		}
		payload, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		return runtime.OptionValue{IsSome: true, Payload: payload}, nil
	case *ast.ResultExpression:
		payload, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		return runtime.ResultValue{IsOk: n.Variant == ast.VariantOk, Payload: payload}, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateStatements(expr.Then, env)
	}
	for _, clause := range expr.ElifClauses {
		clauseCond, err := i.evaluateExpression(clause.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(clauseCond) {
			return i.evaluateStatements(clause.Body, env)
		}
	}
	if expr.Else != nil {
		return i.evaluateStatements(expr.Else, env)
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateAttemptExpression(expr *ast.AttemptExpression, env *runtime.Environment) (runtime.Value, error) {
	result, err := i.evaluateStatements(expr.Body, env)
	if err != nil {
		if rerr, ok := asRuntimeError(err); ok && expr.Rescue != nil {
			rescueEnv := runtime.NewEnvironment(env)
			if defErr := rescueEnv.Define(expr.Rescue.Binding.Name, errorToValue(rerr), false); defErr != nil {
				return nil, errAt(defErr, expr)
			}
			result, err = i.evaluateStatements(expr.Rescue.Body, rescueEnv)
		}
	}
	if expr.Finally != nil {
		// The finally result is discarded; a fault raised inside it
		// supersedes whatever was propagating.
		if _, finallyErr := i.evaluateStatements(expr.Finally.Body, env); finallyErr != nil {
			return nil, finallyErr
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// errorToValue is the program-visible shape of a caught error.
func errorToValue(err *runtime.Error) runtime.Value {
	m := runtime.NewMapValue()
	m.Set("kind", runtime.StringValue{Val: string(err.Kind)})
	m.Set("message", runtime.StringValue{Val: err.Message})
	return m
}

func (i *Interpreter) evaluateCall(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	result, callErr := i.callValue(callee, args, env)
	if callErr != nil {
		return nil, errAt(callErr, call)
	}
	return result, nil
}

func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case runtime.NativeFunctionValue:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return nil, runtime.NewError(runtime.ErrArityMismatch, "builtin '%s' expects %d arguments, got %d", fn.Name, fn.Arity, len(args))
		}
		ctx := &runtime.NativeCallContext{Env: env, Out: i.out}
		return liftNativeResult(fn.Impl(ctx, args))
	default:
		return nil, runtime.NewError(runtime.ErrNotCallable, "value of kind %s is not callable", callee.Kind())
	}
}

func liftNativeResult(val runtime.Value, err *runtime.Error) (runtime.Value, error) {
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, runtime.NewError(runtime.ErrArityMismatch, "function '%s' expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	// Parameters bind in a fresh scope chained to the declaration-time
	// environment, not the caller's.
	localEnv := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Params {
		if err := localEnv.Define(param.Name.Name, args[idx], false); err != nil {
			return nil, err
		}
	}
	result, err := i.evaluateStatements(fn.Body, localEnv)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evaluateIndex(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(expr.Index, env)
	if err != nil {
		return nil, err
	}
	val, idxErr := indexValue(obj, index)
	if idxErr != nil {
		return nil, errAt(idxErr, expr)
	}
	return val, nil
}

func indexValue(obj, index runtime.Value) (runtime.Value, *runtime.Error) {
	switch target := obj.(type) {
	case *runtime.ListValue:
		idx, ok := index.(runtime.IntValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "list index must be int, got %s", index.Kind())
		}
		pos := normalizeIndex(idx.Val, int64(len(target.Elements)))
		if pos < 0 {
			return nil, runtime.NewError(runtime.ErrIndexOutOfRange, "list index %d out of range for length %d", idx.Val, len(target.Elements))
		}
		return target.Elements[pos], nil
	case runtime.StringValue:
		idx, ok := index.(runtime.IntValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "string index must be int, got %s", index.Kind())
		}
		runes := []rune(target.Val)
		pos := normalizeIndex(idx.Val, int64(len(runes)))
		if pos < 0 {
			return nil, runtime.NewError(runtime.ErrIndexOutOfRange, "string index %d out of range for length %d", idx.Val, len(runes))
		}
		return runtime.StringValue{Val: string(runes[pos])}, nil
	case *runtime.MapValue:
		key, ok := index.(runtime.StringValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "map key must be string, got %s", index.Kind())
		}
		val, found := target.Get(key.Val)
		if !found {
			return nil, runtime.NewError(runtime.ErrKeyNotFound, "key '%s' not found", key.Val)
		}
		return val, nil
	case runtime.RangeValue:
		idx, ok := index.(runtime.IntValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "range index must be int, got %s", index.Kind())
		}
		pos := normalizeIndex(idx.Val, target.Len())
		if pos < 0 {
			return nil, runtime.NewError(runtime.ErrIndexOutOfRange, "range index %d out of range for length %d", idx.Val, target.Len())
		}
		return runtime.IntValue{Val: target.Start + pos}, nil
	default:
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "value of kind %s is not indexable", obj.Kind())
	}
}

// normalizeIndex resolves negative indices against length; -1 means the
// last element. Returns -1 when out of range.
func normalizeIndex(idx, length int64) int64 {
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return -1
	}
	return idx
}

func (i *Interpreter) accessMember(obj runtime.Value, member string, node ast.Node) (runtime.Value, error) {
	switch target := obj.(type) {
	case *runtime.MapValue:
		if val, ok := target.Get(member); ok {
			return val, nil
		}
		return runtime.NilValue{}, nil
	default:
		return nil, errAt(runtime.NewError(runtime.ErrTypeMismatch, "attribute access not supported on kind %s", obj.Kind()), node)
	}
}
