package ast

// Short builder helpers for assembling programs in tests and embedders.

func Mod(statements ...Statement) *Module {
	return NewModule(statements)
}

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Declarations.

func Let(name string, value Expression) *LetDeclaration {
	return NewLetDeclaration(ID(name), value)
}

func Var(name string, value Expression) *VarDeclaration {
	return NewVarDeclaration(ID(name), value)
}

func Const(name string, value Expression) *ConstDeclaration {
	return NewConstDeclaration(ID(name), value)
}

func Param(name string) *Parameter {
	return NewParameter(ID(name))
}

func Params(names ...string) []*Parameter {
	params := make([]*Parameter, 0, len(names))
	for _, name := range names {
		params = append(params, Param(name))
	}
	return params
}

func Fn(name string, params []*Parameter, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, body)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Imp(name, path string) *ImportStatement {
	return NewImportStatement(name, path, "", "")
}

func CapReq(capability, typeName string) *CapabilityRequest {
	return NewCapabilityRequest(capability, typeName)
}

// Expressions.

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(ID(name), value)
}

func Call(callee Expression, arguments ...Expression) *CallExpression {
	return NewCallExpression(callee, arguments)
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

func Member(object Expression, member string) *MemberAccess {
	return NewMemberAccess(object, member)
}

func OptChain(object Expression, member string) *OptionalChain {
	return NewOptionalChain(object, member)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

func Entry(key string, value Expression) *MapEntry {
	return NewMapEntry(key, value)
}

func MapLit(entries ...*MapEntry) *MapLiteral {
	return NewMapLiteral(entries)
}

func Lambda(params []*Parameter, body ...Statement) *LambdaExpression {
	return NewLambdaExpression(params, body)
}

func Some(value Expression) *OptionExpression {
	return NewOptionExpression(VariantSome, value)
}

func None() *OptionExpression {
	return NewOptionExpression(VariantNone, nil)
}

func Ok(value Expression) *ResultExpression {
	return NewResultExpression(VariantOk, value)
}

func Err(value Expression) *ResultExpression {
	return NewResultExpression(VariantErr, value)
}

// Control flow.

func If(condition Expression, then ...Statement) *IfExpression {
	return NewIfExpression(condition, then, nil, nil)
}

func IfElse(condition Expression, then, elseBlock []Statement) *IfExpression {
	return NewIfExpression(condition, then, nil, elseBlock)
}

func Elif(condition Expression, body ...Statement) *ElifClause {
	return NewElifClause(condition, body)
}

func For(variable string, iterable Expression, body ...Statement) *ForLoop {
	return NewForLoop(ID(variable), iterable, body)
}

func While(condition Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func Match(subject Expression, clauses ...*MatchClause) *MatchExpression {
	return NewMatchExpression(subject, clauses)
}

func Clause(pattern Pattern, body Expression) *MatchClause {
	return NewMatchClause(pattern, body)
}

// Patterns.

func LitP(literal Literal) *LiteralPattern {
	return NewLiteralPattern(literal)
}

func Wc() *WildcardPattern {
	return NewWildcardPattern()
}

func SomeP(inner Pattern) *OptionPattern {
	return NewOptionPattern(VariantSome, inner)
}

func NoneP() *OptionPattern {
	return NewOptionPattern(VariantNone, nil)
}

func OkP(inner Pattern) *ResultPattern {
	return NewResultPattern(VariantOk, inner)
}

func ErrP(inner Pattern) *ResultPattern {
	return NewResultPattern(VariantErr, inner)
}

func ListP(elements ...Pattern) *ListPattern {
	return NewListPattern(elements)
}

// Attempt / rescue / finally.

func Attempt(body ...Statement) *AttemptExpression {
	return NewAttemptExpression(body, nil, nil)
}

func AttemptRescue(body []Statement, binding string, rescue ...Statement) *AttemptExpression {
	return NewAttemptExpression(body, NewRescueClause(ID(binding), rescue), nil)
}

func AttemptFull(body []Statement, rescue *RescueClause, finally *FinallyClause) *AttemptExpression {
	return NewAttemptExpression(body, rescue, finally)
}

func RescueC(binding string, body ...Statement) *RescueClause {
	return NewRescueClause(ID(binding), body)
}

func FinallyC(body ...Statement) *FinallyClause {
	return NewFinallyClause(body)
}

// Concurrency.

func Strand(body ...Statement) *StrandExpression {
	return NewStrandExpression(body)
}

func Await(expression Expression) *AwaitExpression {
	return NewAwaitExpression(expression)
}
