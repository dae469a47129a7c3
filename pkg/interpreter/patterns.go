package interpreter

import (
	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/runtime"
)

// bindingSet collects the names a pattern would introduce. Bindings are
// staged here and only defined into the environment once the whole
// pattern has matched, so a failed arm leaves no partial bindings.
type bindingSet struct {
	names  []string
	values map[string]runtime.Value
}

func newBindingSet() *bindingSet {
	return &bindingSet{values: make(map[string]runtime.Value)}
}

func (b *bindingSet) add(name string, value runtime.Value) {
	if _, seen := b.values[name]; !seen {
		b.names = append(b.names, name)
	}
	b.values[name] = value
}

func (b *bindingSet) commit(env *runtime.Environment) *runtime.Error {
	for _, name := range b.names {
		if err := env.Define(name, b.values[name], false); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateMatchExpression(expr *ast.MatchExpression, env *runtime.Environment) (runtime.Value, error) {
	subject, err := i.evaluateExpression(expr.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, clause := range expr.Clauses {
		bindings := newBindingSet()
		if !matchPattern(clause.Pattern, subject, bindings) {
			continue
		}
		if defineErr := bindings.commit(env); defineErr != nil {
			return nil, errAt(defineErr, clause.Pattern)
		}
		return i.evaluateExpression(clause.Body, env)
	}
	return nil, errAt(runtime.NewError(runtime.ErrNoMatch, "no pattern matched value of kind %s", subject.Kind()), expr)
}

func matchPattern(pattern ast.Pattern, subject runtime.Value, bindings *bindingSet) bool {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.Identifier:
		bindings.add(p.Name, subject)
		return true
	case *ast.LiteralPattern:
		expected, ok := literalValue(p.Literal)
		if !ok {
			return false
		}
		return runtime.Equal(expected, subject)
	case *ast.OptionPattern:
		opt, ok := subject.(runtime.OptionValue)
		if !ok {
			return false
		}
		if p.Variant == ast.VariantSome {
			if !opt.IsSome {
				return false
			}
			if p.Inner == nil {
				return true
			}
			return matchPattern(p.Inner, opt.Payload, bindings)
		}
		return !opt.IsSome
	case *ast.ResultPattern:
		res, ok := subject.(runtime.ResultValue)
		if !ok {
			return false
		}
		if (p.Variant == ast.VariantOk) != res.IsOk {
			return false
		}
		if p.Inner == nil {
			return true
		}
		return matchPattern(p.Inner, res.Payload, bindings)
	case *ast.ListPattern:
		list, ok := subject.(*runtime.ListValue)
		if !ok || len(list.Elements) != len(p.Elements) {
			return false
		}
		for idx, elem := range p.Elements {
			if !matchPattern(elem, list.Elements[idx], bindings) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func literalValue(lit ast.Literal) (runtime.Value, bool) {
	switch l := lit.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: l.Value}, true
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: l.Value}, true
	case *ast.StringLiteral:
		return runtime.StringValue{Val: l.Value}, true
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: l.Value}, true
	case *ast.NilLiteral:
		return runtime.NilValue{}, true
	default:
		return nil, false
	}
}
