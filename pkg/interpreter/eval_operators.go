package interpreter

import (
	"math"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpAnd:
		// Short-circuit: the left operand decides when falsy and is the
		// result, otherwise the right operand is.
		if !runtime.Truthy(leftVal) {
			return leftVal, nil
		}
		return i.evaluateExpression(expr.Right, env)
	case ast.OpOr:
		if runtime.Truthy(leftVal) {
			return leftVal, nil
		}
		return i.evaluateExpression(expr.Right, env)
	}

	rightVal, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpPipeForward:
		// a |> f invokes f(a).
		result, callErr := i.callPipeline(rightVal, leftVal, env)
		if callErr != nil {
			return nil, errAt(callErr, expr)
		}
		return result, nil
	case ast.OpPipeBackward:
		// f <| a invokes f(a).
		result, callErr := i.callPipeline(leftVal, rightVal, env)
		if callErr != nil {
			return nil, errAt(callErr, expr)
		}
		return result, nil
	case ast.OpEq:
		return runtime.BoolValue{Val: runtime.Equal(leftVal, rightVal)}, nil
	case ast.OpNeq:
		return runtime.BoolValue{Val: !runtime.Equal(leftVal, rightVal)}, nil
	}

	result, opErr := applyBinaryOperator(expr.Operator, leftVal, rightVal)
	if opErr != nil {
		return nil, errAt(opErr, expr)
	}
	return result, nil
}

func (i *Interpreter) callPipeline(callee, arg runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	switch callee.(type) {
	case *runtime.FunctionValue, runtime.NativeFunctionValue:
		return i.callValue(callee, []runtime.Value{arg}, env)
	default:
		return nil, runtime.NewError(runtime.ErrNotCallable, "pipeline target of kind %s is not callable", callee.Kind())
	}
}

func applyBinaryOperator(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, *runtime.Error) {
	switch op {
	case ast.OpAdd:
		if ls, ok := left.(runtime.StringValue); ok {
			rs, ok := right.(runtime.StringValue)
			if !ok {
				return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot add string and %s", right.Kind())
			}
			return runtime.StringValue{Val: ls.Val + rs.Val}, nil
		}
		if ll, ok := left.(*runtime.ListValue); ok {
			rl, ok := right.(*runtime.ListValue)
			if !ok {
				return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot add list and %s", right.Kind())
			}
			joined := make([]runtime.Value, 0, len(ll.Elements)+len(rl.Elements))
			joined = append(joined, ll.Elements...)
			joined = append(joined, rl.Elements...)
			return &runtime.ListValue{Elements: joined}, nil
		}
		return applyArithmetic(op, left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return applyArithmetic(op, left, right)
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		return applyComparison(op, left, right)
	default:
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "unsupported binary operator %s", op)
	}
}

func applyArithmetic(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, *runtime.Error) {
	li, leftIsInt := left.(runtime.IntValue)
	ri, rightIsInt := right.(runtime.IntValue)

	if leftIsInt && rightIsInt {
		switch op {
		case ast.OpAdd:
			return runtime.IntValue{Val: li.Val + ri.Val}, nil
		case ast.OpSub:
			return runtime.IntValue{Val: li.Val - ri.Val}, nil
		case ast.OpMul:
			return runtime.IntValue{Val: li.Val * ri.Val}, nil
		case ast.OpDiv:
			// Division always produces a float, even for two ints.
			if ri.Val == 0 {
				return nil, runtime.NewError(runtime.ErrDivisionByZero, "division by zero")
			}
			return runtime.FloatValue{Val: float64(li.Val) / float64(ri.Val)}, nil
		case ast.OpMod:
			if ri.Val == 0 {
				return nil, runtime.NewError(runtime.ErrDivisionByZero, "modulo by zero")
			}
			return runtime.IntValue{Val: flooredMod(li.Val, ri.Val)}, nil
		}
	}

	lf, leftErr := numericToFloat(left)
	if leftErr != nil {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "operator %s requires numeric operands, got %s and %s", op, left.Kind(), right.Kind())
	}
	rf, rightErr := numericToFloat(right)
	if rightErr != nil {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "operator %s requires numeric operands, got %s and %s", op, left.Kind(), right.Kind())
	}

	switch op {
	case ast.OpAdd:
		return runtime.FloatValue{Val: lf + rf}, nil
	case ast.OpSub:
		return runtime.FloatValue{Val: lf - rf}, nil
	case ast.OpMul:
		return runtime.FloatValue{Val: lf * rf}, nil
	case ast.OpDiv:
		if rf == 0 {
			return nil, runtime.NewError(runtime.ErrDivisionByZero, "division by zero")
		}
		return runtime.FloatValue{Val: lf / rf}, nil
	case ast.OpMod:
		if rf == 0 {
			return nil, runtime.NewError(runtime.ErrDivisionByZero, "modulo by zero")
		}
		return runtime.FloatValue{Val: flooredFloatMod(lf, rf)}, nil
	default:
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "unsupported arithmetic operator %s", op)
	}
}

// flooredMod implements floored modulo: the result takes the divisor's sign.
func flooredMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func flooredFloatMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func applyComparison(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, *runtime.Error) {
	if ls, ok := left.(runtime.StringValue); ok {
		rs, ok := right.(runtime.StringValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot compare string and %s", right.Kind())
		}
		return runtime.BoolValue{Val: comparisonHolds(op, compareStrings(ls.Val, rs.Val))}, nil
	}
	lf, leftErr := numericToFloat(left)
	if leftErr != nil {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	rf, rightErr := numericToFloat(right)
	if rightErr != nil {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	var cmp int
	switch {
	case lf < rf:
		cmp = -1
	case lf > rf:
		cmp = 1
	}
	return runtime.BoolValue{Val: comparisonHolds(op, cmp)}, nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparisonHolds(op ast.BinaryOperator, cmp int) bool {
	switch op {
	case ast.OpLt:
		return cmp < 0
	case ast.OpLte:
		return cmp <= 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpGte:
		return cmp >= 0
	default:
		return false
	}
}

func numericToFloat(val runtime.Value) (float64, error) {
	switch v := val.(type) {
	case runtime.IntValue:
		return float64(v.Val), nil
	case runtime.FloatValue:
		return v.Val, nil
	default:
		return 0, errNotNumeric
	}
}

var errNotNumeric = runtime.NewError(runtime.ErrTypeMismatch, "numeric operand required")

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpNeg:
		switch v := operand.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		default:
			return nil, errAt(runtime.NewError(runtime.ErrTypeMismatch, "unary '-' requires a numeric operand, got %s", operand.Kind()), expr)
		}
	case ast.OpPos:
		switch operand.(type) {
		case runtime.IntValue, runtime.FloatValue:
			return operand, nil
		default:
			return nil, errAt(runtime.NewError(runtime.ErrTypeMismatch, "unary '+' requires a numeric operand, got %s", operand.Kind()), expr)
		}
	case ast.OpNot:
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, errAt(runtime.NewError(runtime.ErrTypeMismatch, "unsupported unary operator %s", expr.Operator), expr)
	}
}
