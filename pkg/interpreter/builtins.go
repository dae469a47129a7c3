package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"flo/interpreter-go/pkg/runtime"
)

var (
	builtinsOnce sync.Once
	builtinTable map[string]runtime.Value
)

// Builtins returns the shared builtin function table. The table is built
// once and shared by every interpreter instance; builtins are pure with
// respect to it.
func Builtins() map[string]runtime.Value {
	builtinsOnce.Do(func() {
		builtinTable = map[string]runtime.Value{
			"print": runtime.NativeFunctionValue{Name: "print", Arity: -1, Impl: builtinPrint},
			"range": runtime.NativeFunctionValue{Name: "range", Arity: 2, Impl: builtinRange},
			"len":   runtime.NativeFunctionValue{Name: "len", Arity: 1, Impl: builtinLen},
			"str":   runtime.NativeFunctionValue{Name: "str", Arity: 1, Impl: builtinStr},
			"int":   runtime.NativeFunctionValue{Name: "int", Arity: 1, Impl: builtinInt},
			"float": runtime.NativeFunctionValue{Name: "float", Arity: 1, Impl: builtinFloat},
			"type":  runtime.NativeFunctionValue{Name: "type", Arity: 1, Impl: builtinType},
		}
	})
	return builtinTable
}

func builtinPrint(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = runtime.Stringify(arg)
	}
	fmt.Fprintln(ctx.Out, strings.Join(parts, " "))
	return runtime.NilValue{}, nil
}

func builtinRange(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	start, ok := args[0].(runtime.IntValue)
	if !ok {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "range start must be int, got %s", args[0].Kind())
	}
	end, ok := args[1].(runtime.IntValue)
	if !ok {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "range end must be int, got %s", args[1].Kind())
	}
	return runtime.RangeValue{Start: start.Val, End: end.Val}, nil
}

func builtinLen(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	switch v := args[0].(type) {
	case *runtime.ListValue:
		return runtime.IntValue{Val: int64(len(v.Elements))}, nil
	case runtime.StringValue:
		return runtime.IntValue{Val: int64(utf8.RuneCountInString(v.Val))}, nil
	case *runtime.MapValue:
		return runtime.IntValue{Val: int64(v.Len())}, nil
	case runtime.RangeValue:
		return runtime.IntValue{Val: v.Len()}, nil
	default:
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "len() not supported for kind %s", args[0].Kind())
	}
}

func builtinStr(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	return runtime.StringValue{Val: runtime.Stringify(args[0])}, nil
}

func builtinInt(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	switch v := args[0].(type) {
	case runtime.IntValue:
		return v, nil
	case runtime.FloatValue:
		// Truncates toward zero.
		return runtime.IntValue{Val: int64(v.Val)}, nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.IntValue{Val: 1}, nil
		}
		return runtime.IntValue{Val: 0}, nil
	case runtime.StringValue:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
		if err != nil {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot convert %q to int", v.Val)
		}
		return runtime.IntValue{Val: parsed}, nil
	default:
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot convert kind %s to int", args[0].Kind())
	}
}

func builtinFloat(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	switch v := args[0].(type) {
	case runtime.FloatValue:
		return v, nil
	case runtime.IntValue:
		return runtime.FloatValue{Val: float64(v.Val)}, nil
	case runtime.StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
		if err != nil {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot convert %q to float", v.Val)
		}
		return runtime.FloatValue{Val: parsed}, nil
	default:
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot convert kind %s to float", args[0].Kind())
	}
}

func builtinType(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, *runtime.Error) {
	return runtime.StringValue{Val: args[0].Kind().String()}, nil
}
