package ir

import (
	"fmt"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message  string
	Function string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	return e.Message
}

// Validator validates structured programs.
type Validator struct {
	program *StructuredProgramInfo
	errors  []ValidationError

	functionName string
}

// Validate checks the structural invariants the backend assumes: exactly one
// Main block per function body at the root, conditions present exactly where
// the block kind requires one, and ElseIf/Else blocks directly following a
// conditional sibling. Returns validation errors if any, or nil if the
// program is valid.
func Validate(program *StructuredProgramInfo) ([]ValidationError, error) {
	if program == nil {
		return nil, fmt.Errorf("program is nil")
	}

	v := &Validator{
		program: program,
		errors:  make([]ValidationError, 0),
	}

	v.ValidateProgram()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// ValidateProgram validates the complete program.
func (v *Validator) ValidateProgram() {
	if len(v.program.Functions) == 0 {
		v.addError("program has no functions")
		return
	}

	for i := range v.program.Functions {
		fn := &v.program.Functions[i]
		v.functionName = fn.Name
		v.validateFunction(fn)
	}
	v.functionName = ""
}

// validateFunction checks one function's body shape.
func (v *Validator) validateFunction(fn *StructuredFunction) {
	if fn.Body == nil {
		v.addError("function has nil body")
		return
	}
	if fn.Body.Kind != BlockMain {
		v.addError(fmt.Sprintf("function body root must be a main block, got %s", fn.Body.Kind))
	}
	v.validateBlock(fn.Body, true)
}

// validateBlock checks a block and its children.
func (v *Validator) validateBlock(block *AstBlock, isRoot bool) {
	if block.Kind == BlockMain && !isRoot {
		v.addError("main block nested inside function body")
	}

	if block.Kind.HasCondition() {
		if block.Condition == nil {
			v.addError(fmt.Sprintf("%s block is missing its condition", block.Kind))
		}
	} else if block.Condition != nil {
		v.addError(fmt.Sprintf("%s block must not carry a condition", block.Kind))
	}

	prevConditional := false
	for _, node := range block.Nodes {
		child, ok := node.(*AstBlock)
		if !ok {
			v.validateLeaf(node)
			prevConditional = false
			continue
		}

		switch child.Kind {
		case BlockElseIf, BlockElse:
			if !prevConditional {
				v.addError(fmt.Sprintf("%s block does not follow an if or else if sibling", child.Kind))
			}
		}
		prevConditional = child.Kind == BlockIf || child.Kind == BlockElseIf

		v.validateBlock(child, false)
	}
}

// validateLeaf checks a leaf statement node.
func (v *Validator) validateLeaf(node AstNode) {
	switch n := node.(type) {
	case *AstOperation:
		if n.Inst == InstCall {
			v.validateCall(n)
		}

	case *AstAssignment:
		if n.Destination == nil || n.Source == nil {
			v.addError("assignment with nil destination or source")
		}

	case *AstComment:
		// Always well formed.

	case *AstOperand:
		v.addError("bare operand in statement position")

	default:
		v.addError(fmt.Sprintf("unexpected node type %T in block body", node))
	}
}

// validateCall checks that a call operation targets a helper function.
func (v *Validator) validateCall(op *AstOperation) {
	if len(op.Operands) == 0 {
		v.addError("call operation has no callee operand")
		return
	}
	callee, ok := op.Operands[0].(*AstOperand)
	if !ok || callee.Kind != OperandConstant {
		v.addError("call operation's first operand must be a constant function index")
		return
	}
	if int(callee.Value) >= len(v.program.Functions) {
		v.addError(fmt.Sprintf("call targets function %d, program has %d functions",
			callee.Value, len(v.program.Functions)))
	} else if callee.Value == 0 {
		v.addError("call targets the entry function")
	}
}

// addError records a validation error with the current context.
func (v *Validator) addError(message string) {
	v.errors = append(v.errors, ValidationError{
		Message:  message,
		Function: v.functionName,
	})
}
