package msl

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gogpu/mslgen/ir"
)

// emitBlock walks one block of the structured tree depth first, emitting the
// control-flow header on entry, each leaf in traversal order, and the
// do-while trailer on exit. isRoot marks the function body's Main block; the
// barrier safeguard only trusts barriers sitting there.
func (c *CodeGenContext) emitBlock(block *ir.AstBlock, isRoot bool) error {
	if err := c.enterBlock(block); err != nil {
		return err
	}

	for _, node := range block.Nodes {
		if child, ok := node.(*ir.AstBlock); ok {
			if err := c.emitBlock(child, false); err != nil {
				return err
			}
			continue
		}
		if err := c.emitLeaf(block, node, isRoot); err != nil {
			return err
		}
	}

	return c.leaveBlock(block)
}

// enterBlock emits the block's header and opens its scope.
func (c *CodeGenContext) enterBlock(block *ir.AstBlock) error {
	switch block.Kind {
	case ir.BlockMain:
		return nil

	case ir.BlockDoWhile:
		c.writeLine("do {")

	case ir.BlockElse:
		c.writeLine("else {")

	case ir.BlockElseIf:
		cond, err := c.genCondition(block.Condition)
		if err != nil {
			return err
		}
		c.writeLine("else if (%s) {", cond)

	case ir.BlockIf:
		cond, err := c.genCondition(block.Condition)
		if err != nil {
			return err
		}
		c.writeLine("if (%s) {", cond)

	default:
		return fmt.Errorf("unexpected block kind %d", block.Kind)
	}

	c.enterScope()
	return nil
}

// leaveBlock closes the block's scope and, for do-while, emits the trailer.
func (c *CodeGenContext) leaveBlock(block *ir.AstBlock) error {
	if block.Kind == ir.BlockMain {
		return nil
	}

	c.leaveScope()

	if block.Kind == ir.BlockDoWhile {
		cond, err := c.genCondition(block.Condition)
		if err != nil {
			return err
		}
		c.writeLine("} while (%s);", cond)
		return nil
	}

	c.writeLine("}")
	return nil
}

// genCondition synthesizes a control-flow condition, coercing it to bool
// whatever its native semantic type is.
func (c *CodeGenContext) genCondition(node ir.AstNode) (string, error) {
	condType, err := c.nodeType(node)
	if err != nil {
		return "", err
	}
	expr, err := c.genExpression(node)
	if err != nil {
		return "", err
	}
	return reinterpretCast(expr, condType, ir.TypeBool), nil
}

// emitLeaf lowers one leaf statement node.
func (c *CodeGenContext) emitLeaf(block *ir.AstBlock, node ir.AstNode, isRoot bool) error {
	switch n := node.(type) {
	case *ir.AstOperation:
		return c.emitOperation(block, n, isRoot)

	case *ir.AstAssignment:
		return c.emitAssignment(n)

	case *ir.AstComment:
		c.writeLine("// %s", n.Text)
		return nil

	default:
		return fmt.Errorf("unexpected node type %T in block body", node)
	}
}

// emitOperation lowers an operation statement.
func (c *CodeGenContext) emitOperation(block *ir.AstBlock, op *ir.AstOperation, isRoot bool) error {
	switch op.Inst {
	case ir.InstBarrier:
		return c.emitBarrier(block, isRoot)

	case ir.InstReturn:
		err := c.emitReturn(op)
		c.mayHaveReturned = true
		return err

	case ir.InstDiscard:
		c.writeLine("discard_fragment();")
		return nil

	case ir.InstCall:
		expr, err := c.genCall(op)
		if err != nil {
			return err
		}
		c.writeLine("%s;", expr)
		return nil
	}

	// Remaining instructions are side-effect free: in statement position
	// their value feeds nothing, so they synthesize no text.
	if _, ok := instTable[op.Inst]; !ok {
		return fmt.Errorf("unexpected instruction %d in statement position", op.Inst)
	}
	return nil
}

// emitBarrier applies the divergence safeguard. A barrier on a divergent
// control path can hang the GPU, so when the host cannot execute barriers
// divergently, only a barrier at the outermost level of the entry function
// before any observed return is trusted to run uniformly.
func (c *CodeGenContext) emitBarrier(block *ir.AstBlock, isRoot bool) error {
	safe := c.options.Host.SupportsDivergentBarriers ||
		(isRoot && c.isEntryFunction && !c.mayHaveReturned)

	if !safe {
		c.logger().Warn("dropped barrier on possibly divergent path",
			zap.String("function", c.currentFunction.Name),
			zap.Stringer("block", block.Kind))
		return nil
	}

	c.writeLine("threadgroup_barrier(%smem_flags::mem_threadgroup);", Namespace)
	return nil
}

// emitReturn lowers an explicit return. Vertex and fragment entry points
// always return their output aggregate; helpers return their declared value.
func (c *CodeGenContext) emitReturn(op *ir.AstOperation) error {
	if c.isEntryFunction {
		if c.options.Stage == ir.StageCompute {
			c.writeLine("return;")
		} else {
			c.writeLine("return %s;", outputVarName)
		}
		return nil
	}

	if len(op.Operands) == 0 {
		c.writeLine("return;")
		return nil
	}

	valueType, err := c.nodeType(op.Operands[0])
	if err != nil {
		return err
	}
	expr, err := c.genExpression(op.Operands[0])
	if err != nil {
		return err
	}
	c.writeLine("return %s;", reinterpretCast(expr, valueType, c.currentFunction.ReturnType))
	return nil
}

// emitAssignment lowers an assignment, coercing the source to the
// destination's semantic type.
func (c *CodeGenContext) emitAssignment(assign *ir.AstAssignment) error {
	destType, err := c.nodeType(assign.Destination)
	if err != nil {
		return err
	}
	srcType, err := c.nodeType(assign.Source)
	if err != nil {
		return err
	}

	dest, err := c.genExpression(assign.Destination)
	if err != nil {
		return err
	}
	src, err := c.genExpression(assign.Source)
	if err != nil {
		return err
	}

	c.writeLine("%s = %s;", dest, reinterpretCast(src, srcType, destType))
	return nil
}
