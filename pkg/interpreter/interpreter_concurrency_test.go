package interpreter

import (
	"testing"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

func TestStrandSpawnAndAwait(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("double", ast.Params("x"), ast.Ret(ast.Bin(ast.OpMul, ast.ID("x"), ast.Int(2)))),
		ast.Let("a", ast.Strand(ast.Call(ast.ID("double"), ast.Int(5)))),
		ast.Let("b", ast.Strand(ast.Call(ast.ID("double"), ast.Int(10)))),
		ast.Bin(ast.OpAdd, ast.Await(ast.ID("a")), ast.Await(ast.ID("b"))),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 30)
}

func TestStrandHandleIsOpaqueValue(t *testing.T) {
	interp := New()
	val := evalExpr(t, interp, ast.Strand(ast.Int(1)))
	if _, ok := val.(*runtime.StrandHandleValue); !ok {
		t.Fatalf("expected strand handle, got %#v", val)
	}
	interp.Executor().Wait()
}

func TestAwaitNonHandleIsIdentity(t *testing.T) {
	interp := New()
	expectInt(t, evalExpr(t, interp, ast.Await(ast.Int(7))), 7)
	expectString(t, evalExpr(t, interp, ast.Await(ast.Str("x"))), "x")
}

func TestAwaitSettledHandleIsIdempotent(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Let("h", ast.Strand(ast.Int(9))),
		ast.Bin(ast.OpAdd, ast.Await(ast.ID("h")), ast.Await(ast.ID("h"))),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 18)
}

func TestReturnInsideStrandResolvesHandle(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Let("h", ast.Strand(ast.Ret(ast.Int(5)), ast.Int(99))),
		ast.Await(ast.ID("h")),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 5)
}

func TestStrandFaultSurfacesOnAwait(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Let("h", ast.Strand(ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0)))),
		ast.Await(ast.ID("h")),
	)
	_, _, err := interp.EvaluateModule(module)
	rerr := expectErrorKind(t, err, runtime.ErrStrandPropagated)
	if rerr.Cause == nil || rerr.Cause.Kind != runtime.ErrDivisionByZero {
		t.Fatalf("expected DivisionByZero cause, got %#v", rerr.Cause)
	}
}

func TestUnawaitedStrandFaultDoesNotCrashModule(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Strand(ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0))),
		ast.Int(42),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	interp.Executor().Wait()
	expectInt(t, val, 42)
}

func TestStrandFaultCanBeRescued(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Let("h", ast.Strand(ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0)))),
		ast.AttemptRescue(
			[]ast.Statement{ast.Await(ast.ID("h"))},
			"e",
			ast.Member(ast.ID("e"), "kind"),
		),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectString(t, val, string(runtime.ErrStrandPropagated))
}

func TestStrandSeesCapturedBindings(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Let("base", ast.Int(40)),
		ast.Let("h", ast.Strand(ast.Bin(ast.OpAdd, ast.ID("base"), ast.Int(2)))),
		ast.Await(ast.ID("h")),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 42)
}

func TestStrandScopeDoesNotLeakIntoSpawner(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Let("h", ast.Strand(ast.Let("local", ast.Int(1)), ast.ID("local"))),
		ast.Await(ast.ID("h")),
	)
	val, env, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	expectInt(t, val, 1)
	if env.Has("local") {
		t.Fatalf("strand-local binding leaked into spawning scope")
	}
}

func TestSerialExecutorSettlesAtSpawn(t *testing.T) {
	interp := NewWith(NewSerialExecutor(), nil)
	handle := runtime.NewStrandHandle()
	interp.Executor().Submit(func() (runtime.Value, *runtime.Error) {
		return runtime.IntValue{Val: 3}, nil
	}, handle)
	if handle.Status() != runtime.StrandResolved {
		t.Fatalf("expected handle resolved at submit, got status %v", handle.Status())
	}
	val, serr, _ := handle.Await()
	if serr != nil {
		t.Fatalf("unexpected strand error: %v", serr)
	}
	expectInt(t, val, 3)
}

func TestSerialExecutorIsDeterministic(t *testing.T) {
	interp := NewWith(NewSerialExecutor(), nil)
	module := ast.Mod(
		ast.Var("order", ast.List()),
		ast.Strand(ast.Assign("order", ast.Bin(ast.OpAdd, ast.ID("order"), ast.List(ast.Int(1))))),
		ast.Strand(ast.Assign("order", ast.Bin(ast.OpAdd, ast.ID("order"), ast.List(ast.Int(2))))),
		ast.ID("order"),
	)
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("module failed: %v", err)
	}
	list, ok := val.(*runtime.ListValue)
	if !ok || len(list.Elements) != 2 {
		t.Fatalf("expected two entries, got %#v", val)
	}
	expectInt(t, list.Elements[0], 1)
	expectInt(t, list.Elements[1], 2)
}

func TestGoroutineExecutorRecoversPanics(t *testing.T) {
	exec := NewGoroutineExecutor()
	handle := runtime.NewStrandHandle()
	exec.Submit(func() (runtime.Value, *runtime.Error) {
		panic("boom")
	}, handle)
	_, serr, status := handle.Await()
	if status != runtime.StrandFailed || serr == nil {
		t.Fatalf("expected failed strand, got status %v err %v", status, serr)
	}
	if serr.Kind != runtime.ErrStrandPropagated {
		t.Fatalf("expected StrandPropagatedError, got %s", serr.Kind)
	}
	exec.Wait()
}
