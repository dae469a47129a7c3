package runtime

import (
	"fmt"
	"io"

	"flo/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindNil
	KindList
	KindMap
	KindRange
	KindFunction
	KindNativeFunction
	KindStrandHandle
	KindOption
	KindResult
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNil:
		return "nil"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindRange:
		return "range"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindStrandHandle:
		return "strand"
	case KindOption:
		return "option"
	case KindResult:
		return "result"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

// MapValue maps string keys to values, preserving insertion order. A key
// overwritten later keeps its original position.
type MapValue struct {
	keys    []string
	entries map[string]Value
}

func NewMapValue() *MapValue {
	return &MapValue{entries: make(map[string]Value)}
}

func (v *MapValue) Kind() Kind { return KindMap }

func (v *MapValue) Set(key string, value Value) {
	if _, ok := v.entries[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.entries[key] = value
}

func (v *MapValue) Get(key string) (Value, bool) {
	val, ok := v.entries[key]
	return val, ok
}

func (v *MapValue) Has(key string) bool {
	_, ok := v.entries[key]
	return ok
}

func (v *MapValue) Len() int {
	return len(v.keys)
}

// Keys returns the keys in insertion order.
func (v *MapValue) Keys() []string {
	return append([]string(nil), v.keys...)
}

// RangeValue is the lazy sequence produced by range(start, end): the
// integers from Start inclusive to End exclusive, never materialized.
type RangeValue struct {
	Start int64
	End   int64
}

func (v RangeValue) Kind() Kind { return KindRange }

func (v RangeValue) Len() int64 {
	if v.End <= v.Start {
		return 0
	}
	return v.End - v.Start
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// FunctionValue pairs a function body with the environment active at its
// declaration site. The closure is captured by reference.
type FunctionValue struct {
	Name    string
	Params  []*ast.Parameter
	Body    []ast.Statement
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeCallContext provides hooks for builtin functions.
type NativeCallContext struct {
	Env *Environment
	Out io.Writer
}

type NativeFunc func(*NativeCallContext, []Value) (Value, *Error)

// NativeFunctionValue is a host function exposed to programs. Arity of -1
// means variadic.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Option and Result
//-----------------------------------------------------------------------------

type OptionValue struct {
	IsSome  bool
	Payload Value
}

func (v OptionValue) Kind() Kind { return KindOption }

type ResultValue struct {
	IsOk    bool
	Payload Value
}

func (v ResultValue) Kind() Kind { return KindResult }

//-----------------------------------------------------------------------------
// Equality
//-----------------------------------------------------------------------------

// Equal reports deep structural equality. Int and Float compare across
// kinds when numerically equal.
func Equal(left, right Value) bool {
	switch lv := left.(type) {
	case IntValue:
		switch rv := right.(type) {
		case IntValue:
			return lv.Val == rv.Val
		case FloatValue:
			return float64(lv.Val) == rv.Val
		}
	case FloatValue:
		switch rv := right.(type) {
		case FloatValue:
			return lv.Val == rv.Val
		case IntValue:
			return lv.Val == float64(rv.Val)
		}
	case BoolValue:
		if rv, ok := right.(BoolValue); ok {
			return lv.Val == rv.Val
		}
	case StringValue:
		if rv, ok := right.(StringValue); ok {
			return lv.Val == rv.Val
		}
	case NilValue:
		_, ok := right.(NilValue)
		return ok
	case *ListValue:
		rv, ok := right.(*ListValue)
		if !ok || len(lv.Elements) != len(rv.Elements) {
			return false
		}
		for idx, el := range lv.Elements {
			if !Equal(el, rv.Elements[idx]) {
				return false
			}
		}
		return true
	case *MapValue:
		rv, ok := right.(*MapValue)
		if !ok || lv.Len() != rv.Len() {
			return false
		}
		for _, key := range lv.keys {
			other, ok := rv.Get(key)
			if !ok || !Equal(lv.entries[key], other) {
				return false
			}
		}
		return true
	case RangeValue:
		if rv, ok := right.(RangeValue); ok {
			return lv.Start == rv.Start && lv.End == rv.End
		}
	case OptionValue:
		rv, ok := right.(OptionValue)
		if !ok || lv.IsSome != rv.IsSome {
			return false
		}
		if !lv.IsSome {
			return true
		}
		return Equal(lv.Payload, rv.Payload)
	case ResultValue:
		rv, ok := right.(ResultValue)
		if !ok || lv.IsOk != rv.IsOk {
			return false
		}
		return Equal(lv.Payload, rv.Payload)
	case *FunctionValue:
		return left == right
	case *StrandHandleValue:
		return left == right
	}
	return false
}

// Truthy reports language truthiness: only Bool(false) and Nil are falsy.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue:
		return false
	default:
		return true
	}
}
