package msl

import (
	"strings"
	"testing"

	"github.com/gogpu/mslgen/ir"
)

func TestArgumentName(t *testing.T) {
	if got := argumentName(0); got != "arg0" {
		t.Errorf("argumentName(0) = %q, want arg0", got)
	}
	if got := argumentName(12); got != "arg12" {
		t.Errorf("argumentName(12) = %q, want arg12", got)
	}
}

func TestOutArgument_ReadThroughPointer(t *testing.T) {
	// Out arguments are by-reference: writes and reads go through a deref.
	program := &ir.StructuredProgramInfo{
		Functions: []ir.StructuredFunction{
			{Name: "main", Body: ir.NewBlock(ir.BlockMain)},
			{
				Name:         "accumulate",
				InArguments:  []ir.VarType{ir.TypeF32},
				OutArguments: []ir.VarType{ir.TypeF32},
				Body: ir.NewBlock(ir.BlockMain,
					ir.NewAssignment(
						ir.NewArgument(1, ir.TypeF32),
						ir.NewOperation(ir.InstAdd,
							ir.NewArgument(1, ir.TypeF32),
							ir.NewArgument(0, ir.TypeF32)))),
			},
		},
	}

	options := DefaultOptions()
	options.Stage = ir.StageCompute

	out := generate(t, program, options)

	if !strings.Contains(out, "(*arg1) = ((*arg1) + arg0);") {
		t.Errorf("Expected out argument accessed through a dereference:\n%s", out)
	}
}

func TestExpression_Shapes(t *testing.T) {
	tests := []struct {
		name string
		op   *ir.AstOperation
		want string
	}{
		{
			name: "binary infix",
			op: ir.NewOperation(ir.InstMultiply,
				ir.NewConstant(2, ir.TypeS32),
				ir.NewConstant(3, ir.TypeS32)),
			want: "x = (2 * 3);",
		},
		{
			name: "unary prefix",
			op: ir.NewOperation(ir.InstNegate,
				ir.NewConstant(4, ir.TypeS32)),
			want: "x = (-4);",
		},
		{
			name: "unary call",
			op: ir.NewOperation(ir.InstAbsolute,
				ir.NewConstant(5, ir.TypeS32)),
			want: "x = metal::abs(5);",
		},
		{
			name: "binary call",
			op: ir.NewOperation(ir.InstMinimum,
				ir.NewConstant(1, ir.TypeS32),
				ir.NewConstant(2, ir.TypeS32)),
			want: "x = metal::min(1, 2);",
		},
		{
			name: "ternary call",
			op: ir.NewOperation(ir.InstClamp,
				ir.NewConstant(9, ir.TypeS32),
				ir.NewConstant(0, ir.TypeS32),
				ir.NewConstant(8, ir.TypeS32)),
			want: "x = metal::clamp(9, 0, 8);",
		},
		{
			name: "nested operations",
			op: ir.NewOperation(ir.InstAdd,
				ir.NewOperation(ir.InstMultiply,
					ir.NewConstant(2, ir.TypeS32),
					ir.NewConstant(3, ir.TypeS32)),
				ir.NewConstant(1, ir.TypeS32)),
			want: "x = ((2 * 3) + 1);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ir.NewBlock(ir.BlockMain,
				ir.NewAssignment(ir.NewLocal(0, ir.TypeS32), tt.op))
			program := singleFunction(body, ir.LocalVariable{Name: "x", Type: ir.TypeS32})

			options := DefaultOptions()
			options.Stage = ir.StageCompute

			out := generate(t, program, options)
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected %q in output:\n%s", tt.want, out)
			}
		})
	}
}

func TestExpression_ComparisonYieldsBool(t *testing.T) {
	// Assigning a comparison result to a numeric local forces a coercion.
	body := ir.NewBlock(ir.BlockMain,
		ir.NewAssignment(
			ir.NewLocal(0, ir.TypeU32),
			ir.NewOperation(ir.InstCompareLess,
				ir.NewConstant(1, ir.TypeS32),
				ir.NewConstant(2, ir.TypeS32))))
	program := singleFunction(body, ir.LocalVariable{Name: "flag", Type: ir.TypeU32})

	options := DefaultOptions()
	options.Stage = ir.StageCompute

	out := generate(t, program, options)

	if !strings.Contains(out, "flag = ((1 < 2) ? 1u : 0u);") {
		t.Errorf("Expected bool comparison coerced to uint:\n%s", out)
	}
}

func TestExpression_InvalidOperandIndexAborts(t *testing.T) {
	body := ir.NewBlock(ir.BlockMain,
		ir.NewAssignment(
			ir.NewLocal(9, ir.TypeF32), // no such local
			ir.NewConstant(0, ir.TypeF32)))

	options := DefaultOptions()
	options.Stage = ir.StageCompute

	_, err := Generate(singleFunction(body), options)
	if err == nil {
		t.Fatal("Expected an error for an invalid local index")
	}
}
