package ast

type NodeType string

const (
	NodeModule              NodeType = "Module"
	NodeImportStatement     NodeType = "ImportStatement"
	NodeCapabilityRequest   NodeType = "CapabilityRequest"
	NodeLetDeclaration      NodeType = "LetDeclaration"
	NodeVarDeclaration      NodeType = "VarDeclaration"
	NodeConstDeclaration    NodeType = "ConstDeclaration"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeParameter           NodeType = "Parameter"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeFloatLiteral        NodeType = "FloatLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeAssignment          NodeType = "Assignment"
	NodeCallExpression      NodeType = "CallExpression"
	NodeIndexExpression     NodeType = "IndexExpression"
	NodeMemberAccess        NodeType = "MemberAccess"
	NodeOptionalChain       NodeType = "OptionalChain"
	NodeListLiteral         NodeType = "ListLiteral"
	NodeMapEntry            NodeType = "MapEntry"
	NodeMapLiteral          NodeType = "MapLiteral"
	NodeIfExpression        NodeType = "IfExpression"
	NodeElifClause          NodeType = "ElifClause"
	NodeMatchExpression     NodeType = "MatchExpression"
	NodeMatchClause         NodeType = "MatchClause"
	NodeLiteralPattern      NodeType = "LiteralPattern"
	NodeWildcardPattern     NodeType = "WildcardPattern"
	NodeOptionPattern       NodeType = "OptionPattern"
	NodeResultPattern       NodeType = "ResultPattern"
	NodeListPattern         NodeType = "ListPattern"
	NodeForLoop             NodeType = "ForLoop"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeAttemptExpression   NodeType = "AttemptExpression"
	NodeRescueClause        NodeType = "RescueClause"
	NodeFinallyClause       NodeType = "FinallyClause"
	NodeLambdaExpression    NodeType = "LambdaExpression"
	NodeStrandExpression    NodeType = "StrandExpression"
	NodeAwaitExpression     NodeType = "AwaitExpression"
	NodeOptionExpression    NodeType = "OptionExpression"
	NodeResultExpression    NodeType = "ResultExpression"
)

// BinaryOperator is the closed operator set for BinaryExpression.
type BinaryOperator string

const (
	OpAdd          BinaryOperator = "+"
	OpSub          BinaryOperator = "-"
	OpMul          BinaryOperator = "*"
	OpDiv          BinaryOperator = "/"
	OpMod          BinaryOperator = "%"
	OpEq           BinaryOperator = "=="
	OpNeq          BinaryOperator = "!="
	OpLt           BinaryOperator = "<"
	OpGt           BinaryOperator = ">"
	OpLte          BinaryOperator = "<="
	OpGte          BinaryOperator = ">="
	OpAnd          BinaryOperator = "&&"
	OpOr           BinaryOperator = "||"
	OpPipeForward  BinaryOperator = "|>"
	OpPipeBackward BinaryOperator = "<|"
)

type UnaryOperator string

const (
	OpNeg UnaryOperator = "-"
	OpNot UnaryOperator = "!"
	OpPos UnaryOperator = "+"
)

// Variant tags for Option/Result constructors and patterns.
const (
	VariantSome = "Some"
	VariantNone = "None"
	VariantOk   = "Ok"
	VariantErr  = "Err"
)

type Node interface {
	NodeType() NodeType
	Pos() (line, column int)
	isNode()
}

type nodeImpl struct {
	Type   NodeType `json:"type"`
	Line   int      `json:"line,omitempty"`
	Column int      `json:"column,omitempty"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType    { return n.Type }
func (n nodeImpl) Pos() (int, int)       { return n.Line, n.Column }
func (nodeImpl) isNode()                 {}
func (n *nodeImpl) SetPos(line, col int) { n.Line = line; n.Column = col }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Module

type Module struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewModule(statements []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Statements: statements}
}

// Identifier doubles as a variable reference and a binding pattern.

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	patternMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Compound expressions

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type Assignment struct {
	nodeImpl
	expressionMarker
	statementMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignment(target *Identifier, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Value: value}
}

type CallExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

type MemberAccess struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Member string     `json:"member"`
}

func NewMemberAccess(object Expression, member string) *MemberAccess {
	return &MemberAccess{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Member: member}
}

type OptionalChain struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Member string     `json:"member"`
}

func NewOptionalChain(object Expression, member string) *OptionalChain {
	return &OptionalChain{nodeImpl: newNodeImpl(NodeOptionalChain), Object: object, Member: member}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// MapEntry keys are strings; construction order is significant.

type MapEntry struct {
	nodeImpl

	Key   string     `json:"key"`
	Value Expression `json:"value"`
}

func NewMapEntry(key string, value Expression) *MapEntry {
	return &MapEntry{nodeImpl: newNodeImpl(NodeMapEntry), Key: key, Value: value}
}

type MapLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Entries []*MapEntry `json:"entries"`
}

func NewMapLiteral(entries []*MapEntry) *MapLiteral {
	return &MapLiteral{nodeImpl: newNodeImpl(NodeMapLiteral), Entries: entries}
}

type OptionExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Variant string     `json:"variant"`
	Value   Expression `json:"value,omitempty"`
}

func NewOptionExpression(variant string, value Expression) *OptionExpression {
	return &OptionExpression{nodeImpl: newNodeImpl(NodeOptionExpression), Variant: variant, Value: value}
}

type ResultExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Variant string     `json:"variant"`
	Value   Expression `json:"value"`
}

func NewResultExpression(variant string, value Expression) *ResultExpression {
	return &ResultExpression{nodeImpl: newNodeImpl(NodeResultExpression), Variant: variant, Value: value}
}
