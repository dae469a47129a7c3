package interpreter

import (
	"bytes"
	"testing"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

func TestFunctionDeclarationAndCall(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("add", ast.Params("a", "b"), ast.Ret(ast.Bin(ast.OpAdd, ast.ID("a"), ast.ID("b")))),
		ast.Call(ast.ID("add"), ast.Int(2), ast.Int(3)),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 5)
}

func TestRecursiveFactorial(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("fact", ast.Params("n"),
			ast.IfElse(
				ast.Bin(ast.OpLte, ast.ID("n"), ast.Int(1)),
				[]ast.Statement{ast.Ret(ast.Int(1))},
				[]ast.Statement{ast.Ret(ast.Bin(ast.OpMul, ast.ID("n"),
					ast.Call(ast.ID("fact"), ast.Bin(ast.OpSub, ast.ID("n"), ast.Int(1)))))},
			),
		),
		ast.Call(ast.ID("fact"), ast.Int(5)),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 120)
}

func TestFunctionBodyYieldsLastValueWithoutReturn(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("f", ast.Params(), ast.Int(1), ast.Int(2)),
		ast.Call(ast.ID("f")),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 2)
}

func TestBareReturnYieldsNil(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("f", ast.Params(), ast.Ret(nil), ast.Int(99)),
		ast.Call(ast.ID("f")),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	if _, ok := val.(runtime.NilValue); !ok {
		t.Fatalf("expected nil from bare return, got %#v", val)
	}
}

func TestLambdaClosesOverDeclarationScope(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("makeAdder", ast.Params("n"),
			ast.Ret(ast.Lambda(ast.Params("x"), ast.Ret(ast.Bin(ast.OpAdd, ast.ID("x"), ast.ID("n"))))),
		),
		ast.Let("addFive", ast.Call(ast.ID("makeAdder"), ast.Int(5))),
		ast.Call(ast.ID("addFive"), ast.Int(3)),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 8)
}

func TestClosureSharesMutableBinding(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Var("count", ast.Int(0)),
		ast.Fn("bump", ast.Params(), ast.Assign("count", ast.Bin(ast.OpAdd, ast.ID("count"), ast.Int(1)))),
		ast.Call(ast.ID("bump")),
		ast.Call(ast.ID("bump")),
		ast.ID("count"),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 2)
}

func TestForLoopSumsRange(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Var("sum", ast.Int(0)),
		ast.For("i", ast.Call(ast.ID("range"), ast.Int(1), ast.Int(6)),
			ast.Assign("sum", ast.Bin(ast.OpAdd, ast.ID("sum"), ast.ID("i"))),
		),
		ast.ID("sum"),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 15)
}

func TestForLoopFreshScopePerIteration(t *testing.T) {
	interp := New()
	// Each closure captures its own iteration binding, not the final one.
	module := ast.Mod(
		ast.Var("fns", ast.List()),
		ast.For("i", ast.Call(ast.ID("range"), ast.Int(0), ast.Int(3)),
			ast.Assign("fns", ast.Bin(ast.OpAdd, ast.ID("fns"),
				ast.List(ast.Lambda(ast.Params(), ast.Ret(ast.ID("i")))))),
		),
		ast.Call(ast.Index(ast.ID("fns"), ast.Int(0))),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 0)
}

func TestForLoopOverStringAndMap(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Var("acc", ast.Str("")),
		ast.For("ch", ast.Str("abc"),
			ast.Assign("acc", ast.Bin(ast.OpAdd, ast.ID("acc"), ast.ID("ch"))),
		),
		ast.For("key", ast.MapLit(ast.Entry("x", ast.Int(1)), ast.Entry("y", ast.Int(2))),
			ast.Assign("acc", ast.Bin(ast.OpAdd, ast.ID("acc"), ast.ID("key"))),
		),
		ast.ID("acc"),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectString(t, val, "abcxy")
}

func TestForLoopOverNonIterableFails(t *testing.T) {
	interp := New()
	_, _, err := interp.EvaluateModule(ast.Mod(ast.For("x", ast.Int(5), ast.ID("x"))))
	expectErrorKind(t, err, runtime.ErrTypeMismatch)
}

func TestWhileLoopSharesScope(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Var("n", ast.Int(0)),
		ast.While(ast.Bin(ast.OpLt, ast.ID("n"), ast.Int(4)),
			ast.Assign("n", ast.Bin(ast.OpAdd, ast.ID("n"), ast.Int(1))),
		),
		ast.ID("n"),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 4)
}

func TestPrintWritesToConfiguredSink(t *testing.T) {
	var buf bytes.Buffer
	interp := NewWith(NewSerialExecutor(), &buf)
	module := ast.Mod(
		ast.Call(ast.ID("print"), ast.Str("hello"), ast.Int(42), ast.List(ast.Str("a"))),
	)
	if _, _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("module failed: %v", err)
	}
	if got := buf.String(); got != "hello 42 [\"a\"]\n" {
		t.Fatalf("unexpected print output %q", got)
	}
}

func TestRangeBuiltinIsLazy(t *testing.T) {
	interp := New()
	val := evalExpr(t, interp, ast.Call(ast.ID("range"), ast.Int(0), ast.Int(1000000)))
	r, ok := val.(runtime.RangeValue)
	if !ok {
		t.Fatalf("expected range value, got %#v", val)
	}
	if r.Len() != 1000000 {
		t.Fatalf("unexpected range length %d", r.Len())
	}
	expectInt(t, evalExpr(t, interp, ast.Index(ast.Call(ast.ID("range"), ast.Int(5), ast.Int(10)), ast.Int(2))), 7)
}

func TestLenBuiltin(t *testing.T) {
	interp := New()
	expectInt(t, evalExpr(t, interp, ast.Call(ast.ID("len"), ast.Str("héllo"))), 5)
	expectInt(t, evalExpr(t, interp, ast.Call(ast.ID("len"), ast.List(ast.Int(1), ast.Int(2)))), 2)
	expectInt(t, evalExpr(t, interp, ast.Call(ast.ID("len"), ast.MapLit(ast.Entry("k", ast.Int(1))))), 1)
}

func TestConversionBuiltins(t *testing.T) {
	interp := New()
	expectInt(t, evalExpr(t, interp, ast.Call(ast.ID("int"), ast.Str("12"))), 12)
	expectInt(t, evalExpr(t, interp, ast.Call(ast.ID("int"), ast.Flt(3.9))), 3)
	expectFloat(t, evalExpr(t, interp, ast.Call(ast.ID("float"), ast.Int(2))), 2.0)
	expectString(t, evalExpr(t, interp, ast.Call(ast.ID("str"), ast.Flt(5.0))), "5.0")
	expectString(t, evalExpr(t, interp, ast.Call(ast.ID("type"), ast.List())), "list")

	_, err := interp.evaluateExpression(ast.Call(ast.ID("int"), ast.Str("nope")), interp.GlobalEnvironment())
	expectErrorKind(t, err, runtime.ErrTypeMismatch)
}

func TestBuiltinsCannotBeReassigned(t *testing.T) {
	interp := New()
	_, err := interp.evaluateExpression(ast.Assign("print", ast.Int(1)), interp.GlobalEnvironment())
	expectErrorKind(t, err, runtime.ErrImmutableReassignment)
}

func TestBuiltinsCanBeShadowed(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("f", ast.Params(),
			ast.Let("len", ast.Int(3)),
			ast.Ret(ast.ID("len")),
		),
		ast.Call(ast.ID("f")),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 3)
}
