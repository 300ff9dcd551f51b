package msl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/mslgen/ir"
)

// instKind selects the textual shape an instruction lowers to.
type instKind uint8

const (
	instOpBinary  instKind = iota // (a <op> b)
	instOpUnary                   // (<op>a)
	instCallUnary                 // fn(a)
	instCallBinary
	instCallTernary
)

// resultRule determines the semantic type an operation produces.
type resultRule uint8

const (
	resultFirstOperand resultRule = iota
	resultBool
	resultF32
	resultS32
	resultU32
	resultVoid
)

// instInfo describes how one instruction lowers to MSL.
type instInfo struct {
	kind   instKind
	text   string
	result resultRule
}

// instTable maps each expression-producing instruction to its MSL form.
// Barriers, calls, returns and discards are statement-level and handled by
// the block emitter instead.
var instTable = map[ir.Instruction]instInfo{
	ir.InstAbsolute:              {instCallUnary, Namespace + "abs", resultFirstOperand},
	ir.InstAdd:                   {instOpBinary, "+", resultFirstOperand},
	ir.InstBitwiseAnd:            {instOpBinary, "&", resultFirstOperand},
	ir.InstBitwiseNot:            {instOpUnary, "~", resultFirstOperand},
	ir.InstBitwiseOr:             {instOpBinary, "|", resultFirstOperand},
	ir.InstBitwiseXor:            {instOpBinary, "^", resultFirstOperand},
	ir.InstCeiling:               {instCallUnary, Namespace + "ceil", resultF32},
	ir.InstClamp:                 {instCallTernary, Namespace + "clamp", resultFirstOperand},
	ir.InstCompareEqual:          {instOpBinary, "==", resultBool},
	ir.InstCompareGreater:        {instOpBinary, ">", resultBool},
	ir.InstCompareGreaterOrEqual: {instOpBinary, ">=", resultBool},
	ir.InstCompareLess:           {instOpBinary, "<", resultBool},
	ir.InstCompareLessOrEqual:    {instOpBinary, "<=", resultBool},
	ir.InstCompareNotEqual:       {instOpBinary, "!=", resultBool},
	ir.InstCosine:                {instCallUnary, Namespace + "cos", resultF32},
	ir.InstDivide:                {instOpBinary, "/", resultFirstOperand},
	ir.InstFloor:                 {instCallUnary, Namespace + "floor", resultF32},
	ir.InstFusedMultiplyAdd:      {instCallTernary, Namespace + "fma", resultF32},
	ir.InstLogicalAnd:            {instOpBinary, "&&", resultBool},
	ir.InstLogicalNot:            {instOpUnary, "!", resultBool},
	ir.InstLogicalOr:             {instOpBinary, "||", resultBool},
	ir.InstMaximum:               {instCallBinary, Namespace + "max", resultFirstOperand},
	ir.InstMinimum:               {instCallBinary, Namespace + "min", resultFirstOperand},
	ir.InstMultiply:              {instOpBinary, "*", resultFirstOperand},
	ir.InstNegate:                {instOpUnary, "-", resultFirstOperand},
	ir.InstReciprocalSquareRoot:  {instCallUnary, Namespace + "rsqrt", resultF32},
	ir.InstShiftLeft:             {instOpBinary, "<<", resultFirstOperand},
	ir.InstShiftRightS32:         {instOpBinary, ">>", resultS32},
	ir.InstShiftRightU32:         {instOpBinary, ">>", resultU32},
	ir.InstSine:                  {instCallUnary, Namespace + "sin", resultF32},
	ir.InstSquareRoot:            {instCallUnary, Namespace + "sqrt", resultF32},
	ir.InstSubtract:              {instOpBinary, "-", resultFirstOperand},
}

// nodeType infers the semantic type of an expression node.
func (c *CodeGenContext) nodeType(node ir.AstNode) (ir.VarType, error) {
	switch n := node.(type) {
	case *ir.AstOperand:
		return n.Type, nil

	case *ir.AstOperation:
		return c.operationType(n)

	default:
		return ir.TypeVoid, fmt.Errorf("cannot infer type of node %T", node)
	}
}

// operationType infers the semantic type an operation produces.
func (c *CodeGenContext) operationType(op *ir.AstOperation) (ir.VarType, error) {
	if op.Inst == ir.InstCall {
		fn, err := c.calleeFunction(op)
		if err != nil {
			return ir.TypeVoid, err
		}
		return fn.ReturnType, nil
	}

	info, ok := instTable[op.Inst]
	if !ok {
		return ir.TypeVoid, fmt.Errorf("no type rule for instruction %d", op.Inst)
	}

	switch info.result {
	case resultBool:
		return ir.TypeBool, nil
	case resultF32:
		return ir.TypeF32, nil
	case resultS32:
		return ir.TypeS32, nil
	case resultU32:
		return ir.TypeU32, nil
	case resultVoid:
		return ir.TypeVoid, nil
	}

	if len(op.Operands) == 0 {
		return ir.TypeVoid, fmt.Errorf("instruction %d has no operands to infer a type from", op.Inst)
	}
	return c.nodeType(op.Operands[0])
}

// genExpression synthesizes the MSL expression for a node.
func (c *CodeGenContext) genExpression(node ir.AstNode) (string, error) {
	switch n := node.(type) {
	case *ir.AstOperand:
		return c.genOperand(n)

	case *ir.AstOperation:
		return c.genOperation(n)

	default:
		return "", fmt.Errorf("unexpected expression node %T", node)
	}
}

// genOperand synthesizes a leaf value reference.
func (c *CodeGenContext) genOperand(operand *ir.AstOperand) (string, error) {
	switch operand.Kind {
	case ir.OperandConstant:
		return formatConstant(operand.Value, operand.Type), nil

	case ir.OperandLocal:
		return c.localName(operand.Value)

	case ir.OperandArgument:
		return c.argumentRef(operand.Value)

	default:
		return "", fmt.Errorf("unexpected operand kind %d", operand.Kind)
	}
}

// genOperation synthesizes an operation expression.
func (c *CodeGenContext) genOperation(op *ir.AstOperation) (string, error) {
	if op.Inst == ir.InstCall {
		return c.genCall(op)
	}

	info, ok := instTable[op.Inst]
	if !ok {
		return "", fmt.Errorf("unexpected instruction %d in expression position", op.Inst)
	}

	operands := make([]string, len(op.Operands))
	for i, operand := range op.Operands {
		expr, err := c.genExpression(operand)
		if err != nil {
			return "", err
		}
		operands[i] = expr
	}

	switch info.kind {
	case instOpUnary:
		if len(operands) != 1 {
			return "", fmt.Errorf("instruction %d expects 1 operand, got %d", op.Inst, len(operands))
		}
		return fmt.Sprintf("(%s%s)", info.text, operands[0]), nil

	case instOpBinary:
		if len(operands) != 2 {
			return "", fmt.Errorf("instruction %d expects 2 operands, got %d", op.Inst, len(operands))
		}
		return fmt.Sprintf("(%s %s %s)", operands[0], info.text, operands[1]), nil

	case instCallUnary, instCallBinary, instCallTernary:
		want := int(info.kind-instCallUnary) + 1
		if len(operands) != want {
			return "", fmt.Errorf("instruction %d expects %d operands, got %d", op.Inst, want, len(operands))
		}
		return fmt.Sprintf("%s(%s)", info.text, strings.Join(operands, ", ")), nil
	}

	return "", fmt.Errorf("unexpected instruction kind %d", info.kind)
}

// genCall synthesizes a helper function call. The first operand is the
// callee's function index; the rest are the call arguments. The support-data
// pointer every helper takes is threaded through automatically.
func (c *CodeGenContext) genCall(op *ir.AstOperation) (string, error) {
	fn, err := c.calleeFunction(op)
	if err != nil {
		return "", err
	}

	args := make([]string, 0, len(op.Operands))
	if c.isEntryFunction {
		args = append(args, "&"+supportVarName)
	} else {
		args = append(args, supportVarName)
	}

	for _, operand := range op.Operands[1:] {
		expr, err := c.genExpression(operand)
		if err != nil {
			return "", err
		}
		args = append(args, expr)
	}

	return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(args, ", ")), nil
}

// calleeFunction resolves a call operation's target function.
func (c *CodeGenContext) calleeFunction(op *ir.AstOperation) (*ir.StructuredFunction, error) {
	if len(op.Operands) == 0 {
		return nil, fmt.Errorf("call operation has no callee operand")
	}
	callee, ok := op.Operands[0].(*ir.AstOperand)
	if !ok || callee.Kind != ir.OperandConstant {
		return nil, fmt.Errorf("call operation's first operand must be a constant function index")
	}
	if int(callee.Value) >= len(c.program.Functions) {
		return nil, fmt.Errorf("call targets invalid function index %d", callee.Value)
	}
	return &c.program.Functions[callee.Value], nil
}

// localName returns the declared name of a local variable.
func (c *CodeGenContext) localName(index uint32) (string, error) {
	if int(index) >= len(c.currentFunction.Locals) {
		return "", fmt.Errorf("invalid local variable index %d", index)
	}
	name := c.currentFunction.Locals[index].Name
	if name == "" {
		name = fmt.Sprintf("local_%d", index)
	}
	return name, nil
}

// argumentName returns the parameter name for a flat argument index
// (in arguments first, then out arguments).
func argumentName(index uint32) string {
	return fmt.Sprintf("arg%d", index)
}

// argumentRef returns the expression referencing an argument's value. Out
// arguments are by-reference pointers and read through a dereference.
func (c *CodeGenContext) argumentRef(index uint32) (string, error) {
	fn := c.currentFunction
	total := len(fn.InArguments) + len(fn.OutArguments)
	if int(index) >= total {
		return "", fmt.Errorf("invalid argument index %d", index)
	}
	if int(index) >= len(fn.InArguments) {
		return fmt.Sprintf("(*%s)", argumentName(index)), nil
	}
	return argumentName(index), nil
}

// formatConstant renders an immediate value from its 32-bit pattern.
func formatConstant(value uint32, typ ir.VarType) string {
	switch typ {
	case ir.TypeBool:
		if value != 0 {
			return "true"
		}
		return "false"

	case ir.TypeF32:
		f := float64(math.Float32frombits(value))
		text := strconv.FormatFloat(f, 'g', -1, 32)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return text

	case ir.TypeU32:
		return fmt.Sprintf("%du", value)

	default:
		return strconv.FormatInt(int64(int32(value)), 10)
	}
}
