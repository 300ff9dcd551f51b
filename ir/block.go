package ir

// AstNode is a node in a structured function body: either a nested AstBlock
// or one of the leaf statement forms (AstOperation, AstAssignment,
// AstComment, AstOperand).
type AstNode interface {
	astNode()
}

// BlockKind discriminates the structured control-flow forms.
type BlockKind uint8

const (
	// BlockMain is the root block of a function body. Exactly one exists
	// per function, and it never nests.
	BlockMain BlockKind = iota
	BlockIf
	BlockElseIf
	BlockElse
	BlockDoWhile
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockMain:
		return "main"
	case BlockIf:
		return "if"
	case BlockElseIf:
		return "else if"
	case BlockElse:
		return "else"
	case BlockDoWhile:
		return "do while"
	}
	return "unknown"
}

// HasCondition reports whether the kind carries a condition expression.
func (k BlockKind) HasCondition() bool {
	switch k {
	case BlockIf, BlockElseIf, BlockDoWhile:
		return true
	}
	return false
}

// AstBlock is a structured control-flow block.
type AstBlock struct {
	Kind BlockKind

	// Condition is the boolean-valued condition expression. Present for
	// If/ElseIf/DoWhile, nil for Main/Else.
	Condition AstNode

	// Nodes are the block's children in source order.
	Nodes []AstNode
}

func (*AstBlock) astNode() {}

// NewBlock creates a block without a condition (Main, Else).
func NewBlock(kind BlockKind, nodes ...AstNode) *AstBlock {
	return &AstBlock{Kind: kind, Nodes: nodes}
}

// NewCondBlock creates a block with a condition (If, ElseIf, DoWhile).
func NewCondBlock(kind BlockKind, cond AstNode, nodes ...AstNode) *AstBlock {
	return &AstBlock{Kind: kind, Condition: cond, Nodes: nodes}
}

// AddNode appends a child node.
func (b *AstBlock) AddNode(node AstNode) {
	b.Nodes = append(b.Nodes, node)
}

// AstOperation is an instruction with its operands. An operation may or may
// not produce a value; value-producing operations appear as the source of an
// AstAssignment rather than as a statement of their own.
type AstOperation struct {
	Inst     Instruction
	Operands []AstNode
}

func (*AstOperation) astNode() {}

// NewOperation creates an operation node.
func NewOperation(inst Instruction, operands ...AstNode) *AstOperation {
	return &AstOperation{Inst: inst, Operands: operands}
}

// AstAssignment stores the value of Source into Destination.
type AstAssignment struct {
	Destination AstNode
	Source      AstNode
}

func (*AstAssignment) astNode() {}

// NewAssignment creates an assignment node.
func NewAssignment(dest, src AstNode) *AstAssignment {
	return &AstAssignment{Destination: dest, Source: src}
}

// AstComment is opaque text emitted verbatim as a line comment.
type AstComment struct {
	Text string
}

func (*AstComment) astNode() {}

// OperandKind discriminates the leaf value forms.
type OperandKind uint8

const (
	// OperandConstant is an immediate value, stored as its 32-bit pattern.
	OperandConstant OperandKind = iota

	// OperandLocal references a function-local variable by index.
	OperandLocal

	// OperandArgument references a function argument by flat index: in
	// arguments first, then out arguments.
	OperandArgument
)

// AstOperand is a leaf value reference.
type AstOperand struct {
	Kind OperandKind

	// Value is the bit pattern for OperandConstant, or the variable or
	// argument index otherwise.
	Value uint32

	Type VarType
}

func (*AstOperand) astNode() {}

// NewConstant creates a constant operand from a raw 32-bit pattern.
func NewConstant(value uint32, typ VarType) *AstOperand {
	return &AstOperand{Kind: OperandConstant, Value: value, Type: typ}
}

// NewLocal creates an operand referencing local variable index.
func NewLocal(index uint32, typ VarType) *AstOperand {
	return &AstOperand{Kind: OperandLocal, Value: index, Type: typ}
}

// NewArgument creates an operand referencing argument index.
func NewArgument(index uint32, typ VarType) *AstOperand {
	return &AstOperand{Kind: OperandArgument, Value: index, Type: typ}
}
