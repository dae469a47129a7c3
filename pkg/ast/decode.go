package ast

import (
	"fmt"

	"github.com/goccy/go-json"
)

// DecodeModule parses the JSON form of a module, as emitted by the
// front-end, into AST nodes.
func DecodeModule(data []byte) (*Module, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	module, ok := node.(*Module)
	if !ok {
		return nil, fmt.Errorf("expected Module at top level, got %s", node.NodeType())
	}
	return module, nil
}

type posSetter interface {
	SetPos(line, col int)
}

func decodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	decoded, err := decodeNodeBody(NodeType(typ), node)
	if err != nil {
		return nil, err
	}
	if ps, ok := decoded.(posSetter); ok {
		line, _ := node["line"].(float64)
		col, _ := node["column"].(float64)
		if line > 0 {
			ps.SetPos(int(line), int(col))
		}
	}
	return decoded, nil
}

func decodeNodeBody(typ NodeType, node map[string]any) (Node, error) {
	switch typ {
	case NodeModule:
		stmts, err := decodeStatements(node["statements"])
		if err != nil {
			return nil, err
		}
		return NewModule(stmts), nil
	case NodeIdentifier:
		name, _ := node["name"].(string)
		return NewIdentifier(name), nil
	case NodeIntegerLiteral:
		return NewIntegerLiteral(intFromAny(node["value"])), nil
	case NodeFloatLiteral:
		val, _ := node["value"].(float64)
		return NewFloatLiteral(val), nil
	case NodeStringLiteral:
		val, _ := node["value"].(string)
		return NewStringLiteral(val), nil
	case NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return NewBooleanLiteral(val), nil
	case NodeNilLiteral:
		return NewNilLiteral(), nil
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return NewBinaryExpression(BinaryOperator(op), left, right), nil
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpressionField(node, "operand")
		if err != nil {
			return nil, err
		}
		return NewUnaryExpression(UnaryOperator(op), operand), nil
	case NodeAssignment:
		target, err := decodeIdentifierField(node, "target")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return NewAssignment(target, value), nil
	case NodeCallExpression:
		callee, err := decodeExpressionField(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return NewCallExpression(callee, args), nil
	case NodeIndexExpression:
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		index, err := decodeExpressionField(node, "index")
		if err != nil {
			return nil, err
		}
		return NewIndexExpression(object, index), nil
	case NodeMemberAccess:
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		member, _ := node["member"].(string)
		return NewMemberAccess(object, member), nil
	case NodeOptionalChain:
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		member, _ := node["member"].(string)
		return NewOptionalChain(object, member), nil
	case NodeListLiteral:
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return NewListLiteral(elements), nil
	case NodeMapLiteral:
		entriesVal, _ := node["entries"].([]any)
		entries := make([]*MapEntry, 0, len(entriesVal))
		for _, raw := range entriesVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid map entry %T", raw)
			}
			key, _ := child["key"].(string)
			value, err := decodeExpressionField(child, "value")
			if err != nil {
				return nil, err
			}
			entries = append(entries, NewMapEntry(key, value))
		}
		return NewMapLiteral(entries), nil
	case NodeOptionExpression:
		variant, _ := node["variant"].(string)
		if variant == VariantNone {
			return NewOptionExpression(variant, nil), nil
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return NewOptionExpression(variant, value), nil
	case NodeResultExpression:
		variant, _ := node["variant"].(string)
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return NewResultExpression(variant, value), nil
	case NodeLetDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return NewLetDeclaration(name, value), nil
	case NodeVarDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return NewVarDeclaration(name, value), nil
	case NodeConstDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return NewConstDeclaration(name, value), nil
	case NodeFunctionDeclaration:
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		params, err := decodeParameters(node["params"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewFunctionDeclaration(id, params, body), nil
	case NodeReturnStatement:
		if node["argument"] == nil {
			return NewReturnStatement(nil), nil
		}
		argument, err := decodeExpressionField(node, "argument")
		if err != nil {
			return nil, err
		}
		return NewReturnStatement(argument), nil
	case NodeImportStatement:
		name, _ := node["name"].(string)
		path, _ := node["path"].(string)
		version, _ := node["version"].(string)
		alias, _ := node["alias"].(string)
		return NewImportStatement(name, path, version, alias), nil
	case NodeCapabilityRequest:
		capability, _ := node["capability"].(string)
		typeName, _ := node["typeName"].(string)
		return NewCapabilityRequest(capability, typeName), nil
	case NodeIfExpression:
		condition, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeStatements(node["then"])
		if err != nil {
			return nil, err
		}
		elifVal, _ := node["elifClauses"].([]any)
		elifs := make([]*ElifClause, 0, len(elifVal))
		for _, raw := range elifVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid elif clause %T", raw)
			}
			clauseCond, err := decodeExpressionField(child, "condition")
			if err != nil {
				return nil, err
			}
			clauseBody, err := decodeStatements(child["body"])
			if err != nil {
				return nil, err
			}
			elifs = append(elifs, NewElifClause(clauseCond, clauseBody))
		}
		var elseBlock []Statement
		if node["else"] != nil {
			elseBlock, err = decodeStatements(node["else"])
			if err != nil {
				return nil, err
			}
		}
		return NewIfExpression(condition, then, elifs, elseBlock), nil
	case NodeForLoop:
		variable, err := decodeIdentifierField(node, "variable")
		if err != nil {
			return nil, err
		}
		iterable, err := decodeExpressionField(node, "iterable")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewForLoop(variable, iterable, body), nil
	case NodeWhileLoop:
		condition, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewWhileLoop(condition, body), nil
	case NodeMatchExpression:
		subject, err := decodeExpressionField(node, "subject")
		if err != nil {
			return nil, err
		}
		clausesVal, _ := node["clauses"].([]any)
		clauses := make([]*MatchClause, 0, len(clausesVal))
		for _, raw := range clausesVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid match clause %T", raw)
			}
			pattern, err := decodePatternField(child, "pattern")
			if err != nil {
				return nil, err
			}
			body, err := decodeExpressionField(child, "body")
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, NewMatchClause(pattern, body))
		}
		return NewMatchExpression(subject, clauses), nil
	case NodeLiteralPattern:
		litRaw, ok := node["literal"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("literal pattern missing literal")
		}
		child, err := decodeNode(litRaw)
		if err != nil {
			return nil, err
		}
		lit, ok := child.(Literal)
		if !ok {
			return nil, fmt.Errorf("invalid pattern literal %s", child.NodeType())
		}
		return NewLiteralPattern(lit), nil
	case NodeWildcardPattern:
		return NewWildcardPattern(), nil
	case NodeOptionPattern:
		variant, _ := node["variant"].(string)
		inner, err := decodeOptionalPattern(node, "inner")
		if err != nil {
			return nil, err
		}
		return NewOptionPattern(variant, inner), nil
	case NodeResultPattern:
		variant, _ := node["variant"].(string)
		inner, err := decodeOptionalPattern(node, "inner")
		if err != nil {
			return nil, err
		}
		return NewResultPattern(variant, inner), nil
	case NodeListPattern:
		elementsVal, _ := node["elements"].([]any)
		elements := make([]Pattern, 0, len(elementsVal))
		for _, raw := range elementsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid list pattern element %T", raw)
			}
			pattern, err := decodePattern(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, pattern)
		}
		return NewListPattern(elements), nil
	case NodeAttemptExpression:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		var rescue *RescueClause
		if rescueRaw, ok := node["rescue"].(map[string]any); ok {
			binding, err := decodeIdentifierField(rescueRaw, "binding")
			if err != nil {
				return nil, err
			}
			rescueBody, err := decodeStatements(rescueRaw["body"])
			if err != nil {
				return nil, err
			}
			rescue = NewRescueClause(binding, rescueBody)
		}
		var finally *FinallyClause
		if finallyRaw, ok := node["finally"].(map[string]any); ok {
			finallyBody, err := decodeStatements(finallyRaw["body"])
			if err != nil {
				return nil, err
			}
			finally = NewFinallyClause(finallyBody)
		}
		return NewAttemptExpression(body, rescue, finally), nil
	case NodeLambdaExpression:
		params, err := decodeParameters(node["params"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewLambdaExpression(params, body), nil
	case NodeStrandExpression:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewStrandExpression(body), nil
	case NodeAwaitExpression:
		expr, err := decodeExpressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return NewAwaitExpression(expr), nil
	default:
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
}

func decodeStatements(raw any) ([]Statement, error) {
	items, _ := raw.([]any)
	stmts := make([]Statement, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement entry %T", item)
		}
		node, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(Statement)
		if !ok {
			return nil, fmt.Errorf("node %s is not a statement", node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	exprs := make([]Expression, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid expression entry %T", item)
		}
		expr, err := decodeExpression(child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeExpression(node map[string]any) (Expression, error) {
	child, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(Expression)
	if !ok {
		return nil, fmt.Errorf("node %s is not an expression", child.NodeType())
	}
	return expr, nil
}

func decodeExpressionField(node map[string]any, field string) (Expression, error) {
	child, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("missing %q on %v node", field, node["type"])
	}
	return decodeExpression(child)
}

func decodeIdentifierField(node map[string]any, field string) (*Identifier, error) {
	child, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("missing %q on %v node", field, node["type"])
	}
	decoded, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	id, ok := decoded.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("expected identifier for %q, got %s", field, decoded.NodeType())
	}
	return id, nil
}

func decodePattern(node map[string]any) (Pattern, error) {
	child, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	pattern, ok := child.(Pattern)
	if !ok {
		return nil, fmt.Errorf("node %s is not a pattern", child.NodeType())
	}
	return pattern, nil
}

func decodePatternField(node map[string]any, field string) (Pattern, error) {
	child, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("missing %q on %v node", field, node["type"])
	}
	return decodePattern(child)
}

func decodeOptionalPattern(node map[string]any, field string) (Pattern, error) {
	child, ok := node[field].(map[string]any)
	if !ok {
		return nil, nil
	}
	return decodePattern(child)
}

func decodeParameters(raw any) ([]*Parameter, error) {
	items, _ := raw.([]any)
	params := make([]*Parameter, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameter entry %T", item)
		}
		name, err := decodeIdentifierField(child, "name")
		if err != nil {
			return nil, err
		}
		params = append(params, NewParameter(name))
	}
	return params, nil
}

// JSON numbers arrive as float64; integer literals round-trip exactly up
// to 2^53.
func intFromAny(raw any) int64 {
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case string:
		var parsed int64
		fmt.Sscanf(v, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}
