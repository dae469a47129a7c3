package ast

// Declarations and statements

// ImportStatement is recognized by the front-end but inert in the core:
// module resolution happens outside the evaluator.
type ImportStatement struct {
	nodeImpl
	statementMarker

	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
	Alias   string `json:"alias,omitempty"`
}

func NewImportStatement(name, path, version, alias string) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImportStatement), Name: name, Path: path, Version: version, Alias: alias}
}

// CapabilityRequest is likewise recognized but not enforced here.
type CapabilityRequest struct {
	nodeImpl
	statementMarker

	Capability string `json:"capability"`
	TypeName   string `json:"typeName"`
}

func NewCapabilityRequest(capability, typeName string) *CapabilityRequest {
	return &CapabilityRequest{nodeImpl: newNodeImpl(NodeCapabilityRequest), Capability: capability, TypeName: typeName}
}

type LetDeclaration struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewLetDeclaration(name *Identifier, value Expression) *LetDeclaration {
	return &LetDeclaration{nodeImpl: newNodeImpl(NodeLetDeclaration), Name: name, Value: value}
}

type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewVarDeclaration(name *Identifier, value Expression) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Value: value}
}

type ConstDeclaration struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewConstDeclaration(name *Identifier, value Expression) *ConstDeclaration {
	return &ConstDeclaration{nodeImpl: newNodeImpl(NodeConstDeclaration), Name: name, Value: value}
}

type Parameter struct {
	nodeImpl

	Name *Identifier `json:"name"`
}

func NewParameter(name *Identifier) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	ID     *Identifier  `json:"id"`
	Params []*Parameter `json:"params"`
	Body   []Statement  `json:"body"`
}

func NewFunctionDeclaration(id *Identifier, params []*Parameter, body []Statement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// Control flow

type ElifClause struct {
	nodeImpl

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewElifClause(condition Expression, body []Statement) *ElifClause {
	return &ElifClause{nodeImpl: newNodeImpl(NodeElifClause), Condition: condition, Body: body}
}

type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition   Expression    `json:"condition"`
	Then        []Statement   `json:"then"`
	ElifClauses []*ElifClause `json:"elifClauses,omitempty"`
	Else        []Statement   `json:"else,omitempty"`
}

func NewIfExpression(condition Expression, then []Statement, elifClauses []*ElifClause, elseBlock []Statement) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Then: then, ElifClauses: elifClauses, Else: elseBlock}
}

type ForLoop struct {
	nodeImpl
	expressionMarker
	statementMarker

	Variable *Identifier `json:"variable"`
	Iterable Expression  `json:"iterable"`
	Body     []Statement `json:"body"`
}

func NewForLoop(variable *Identifier, iterable Expression, body []Statement) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Variable: variable, Iterable: iterable, Body: body}
}

type WhileLoop struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewWhileLoop(condition Expression, body []Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

// Match

type MatchClause struct {
	nodeImpl

	Pattern Pattern    `json:"pattern"`
	Body    Expression `json:"body"`
}

func NewMatchClause(pattern Pattern, body Expression) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Body: body}
}

type MatchExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Subject Expression     `json:"subject"`
	Clauses []*MatchClause `json:"clauses"`
}

func NewMatchExpression(subject Expression, clauses []*MatchClause) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Clauses: clauses}
}

// Patterns

type LiteralPattern struct {
	nodeImpl
	patternMarker

	Literal Literal `json:"literal"`
}

func NewLiteralPattern(literal Literal) *LiteralPattern {
	return &LiteralPattern{nodeImpl: newNodeImpl(NodeLiteralPattern), Literal: literal}
}

type WildcardPattern struct {
	nodeImpl
	patternMarker
}

func NewWildcardPattern() *WildcardPattern {
	return &WildcardPattern{nodeImpl: newNodeImpl(NodeWildcardPattern)}
}

type OptionPattern struct {
	nodeImpl
	patternMarker

	Variant string  `json:"variant"`
	Inner   Pattern `json:"inner,omitempty"`
}

func NewOptionPattern(variant string, inner Pattern) *OptionPattern {
	return &OptionPattern{nodeImpl: newNodeImpl(NodeOptionPattern), Variant: variant, Inner: inner}
}

type ResultPattern struct {
	nodeImpl
	patternMarker

	Variant string  `json:"variant"`
	Inner   Pattern `json:"inner,omitempty"`
}

func NewResultPattern(variant string, inner Pattern) *ResultPattern {
	return &ResultPattern{nodeImpl: newNodeImpl(NodeResultPattern), Variant: variant, Inner: inner}
}

type ListPattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern `json:"elements"`
}

func NewListPattern(elements []Pattern) *ListPattern {
	return &ListPattern{nodeImpl: newNodeImpl(NodeListPattern), Elements: elements}
}

// Attempt / rescue / finally

type RescueClause struct {
	nodeImpl

	Binding *Identifier `json:"binding"`
	Body    []Statement `json:"body"`
}

func NewRescueClause(binding *Identifier, body []Statement) *RescueClause {
	return &RescueClause{nodeImpl: newNodeImpl(NodeRescueClause), Binding: binding, Body: body}
}

type FinallyClause struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewFinallyClause(body []Statement) *FinallyClause {
	return &FinallyClause{nodeImpl: newNodeImpl(NodeFinallyClause), Body: body}
}

type AttemptExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body    []Statement    `json:"body"`
	Rescue  *RescueClause  `json:"rescue,omitempty"`
	Finally *FinallyClause `json:"finally,omitempty"`
}

func NewAttemptExpression(body []Statement, rescue *RescueClause, finally *FinallyClause) *AttemptExpression {
	return &AttemptExpression{nodeImpl: newNodeImpl(NodeAttemptExpression), Body: body, Rescue: rescue, Finally: finally}
}

// Functions and concurrency

type LambdaExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Params []*Parameter `json:"params"`
	Body   []Statement  `json:"body"`
}

func NewLambdaExpression(params []*Parameter, body []Statement) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, Body: body}
}

type StrandExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body []Statement `json:"body"`
}

func NewStrandExpression(body []Statement) *StrandExpression {
	return &StrandExpression{nodeImpl: newNodeImpl(NodeStrandExpression), Body: body}
}

type AwaitExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Expression Expression `json:"expression"`
}

func NewAwaitExpression(expression Expression) *AwaitExpression {
	return &AwaitExpression{nodeImpl: newNodeImpl(NodeAwaitExpression), Expression: expression}
}
