package interpreter

import (
	"testing"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

func TestMatchLiteralPattern(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.Int(2),
		ast.Clause(ast.LitP(ast.Int(1)), ast.Str("one")),
		ast.Clause(ast.LitP(ast.Int(2)), ast.Str("two")),
		ast.Clause(ast.Wc(), ast.Str("many")),
	)
	expectString(t, evalExpr(t, interp, expr), "two")
}

func TestMatchFirstClauseWins(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.Int(1),
		ast.Clause(ast.Wc(), ast.Str("first")),
		ast.Clause(ast.LitP(ast.Int(1)), ast.Str("second")),
	)
	expectString(t, evalExpr(t, interp, expr), "first")
}

func TestMatchIdentifierBindsIntoCurrentScope(t *testing.T) {
	interp := New()
	env := interp.GlobalEnvironment()
	expr := ast.Match(ast.Int(9),
		ast.Clause(ast.ID("captured"), ast.Bin(ast.OpAdd, ast.ID("captured"), ast.Int(1))),
	)
	val, err := interp.evaluateExpression(expr, env)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	expectInt(t, val, 10)
	bound, getErr := env.Get("captured")
	if getErr != nil {
		t.Fatalf("expected binding to survive the match: %v", getErr)
	}
	expectInt(t, bound, 9)
}

func TestMatchOptionDestructuring(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.Some(ast.Int(5)),
		ast.Clause(ast.NoneP(), ast.Int(0)),
		ast.Clause(ast.SomeP(ast.ID("x")), ast.Bin(ast.OpMul, ast.ID("x"), ast.Int(2))),
	)
	expectInt(t, evalExpr(t, interp, expr), 10)
}

func TestMatchNonePattern(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.None(),
		ast.Clause(ast.SomeP(ast.Wc()), ast.Str("some")),
		ast.Clause(ast.NoneP(), ast.Str("none")),
	)
	expectString(t, evalExpr(t, interp, expr), "none")
}

func TestMatchResultDestructuring(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.Err(ast.Str("boom")),
		ast.Clause(ast.OkP(ast.ID("v")), ast.ID("v")),
		ast.Clause(ast.ErrP(ast.ID("msg")), ast.ID("msg")),
	)
	expectString(t, evalExpr(t, interp, expr), "boom")
}

func TestMatchListPatternRequiresExactArity(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.List(ast.Int(1), ast.Int(2)),
		ast.Clause(ast.ListP(ast.ID("a"), ast.ID("b"), ast.ID("c")), ast.Str("three")),
		ast.Clause(ast.ListP(ast.ID("a"), ast.ID("b")), ast.Bin(ast.OpAdd, ast.ID("a"), ast.ID("b"))),
	)
	expectInt(t, evalExpr(t, interp, expr), 3)
}

func TestMatchNestedPatterns(t *testing.T) {
	interp := New()
	subject := ast.List(ast.Some(ast.Int(4)), ast.Int(2))
	expr := ast.Match(subject,
		ast.Clause(
			ast.ListP(ast.SomeP(ast.ID("inner")), ast.LitP(ast.Int(2))),
			ast.ID("inner"),
		),
	)
	expectInt(t, evalExpr(t, interp, expr), 4)
}

func TestMatchNoClauseMatches(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.Int(3),
		ast.Clause(ast.LitP(ast.Int(1)), ast.Str("one")),
	)
	_, err := interp.evaluateExpression(expr, interp.GlobalEnvironment())
	expectErrorKind(t, err, runtime.ErrNoMatch)
}

func TestMatchFailedClauseLeavesNoBindings(t *testing.T) {
	interp := New()
	env := interp.GlobalEnvironment()
	// The first clause binds "a" before failing on the literal; the
	// binding must not be visible afterwards.
	expr := ast.Match(ast.List(ast.Int(1), ast.Int(2)),
		ast.Clause(ast.ListP(ast.ID("a"), ast.LitP(ast.Int(99))), ast.ID("a")),
		ast.Clause(ast.Wc(), ast.Int(0)),
	)
	if _, err := interp.evaluateExpression(expr, env); err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if env.Has("a") {
		t.Fatalf("failed clause leaked binding into scope")
	}
}

func TestMatchKindMismatchFallsThrough(t *testing.T) {
	interp := New()
	expr := ast.Match(ast.Int(7),
		ast.Clause(ast.SomeP(ast.Wc()), ast.Str("option")),
		ast.Clause(ast.ListP(), ast.Str("list")),
		ast.Clause(ast.Wc(), ast.Str("other")),
	)
	expectString(t, evalExpr(t, interp, expr), "other")
}
