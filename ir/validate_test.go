package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProgram() *StructuredProgramInfo {
	body := NewBlock(BlockMain,
		NewAssignment(NewLocal(0, TypeF32), NewConstant(0, TypeF32)),
		NewCondBlock(BlockIf,
			NewOperation(InstCompareGreater, NewLocal(0, TypeF32), NewConstant(0, TypeF32)),
			NewOperation(InstReturn)),
		NewBlock(BlockElse,
			&AstComment{Text: "fallback"}),
	)

	return &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name:   "main",
			Locals: []LocalVariable{{Name: "x", Type: TypeF32}},
			Body:   body,
		}},
	}
}

func TestValidate_ValidProgram(t *testing.T) {
	errs, err := Validate(validProgram())
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_NilProgram(t *testing.T) {
	_, err := Validate(nil)
	require.Error(t, err)
}

func TestValidate_NoFunctions(t *testing.T) {
	errs, err := Validate(&StructuredProgramInfo{})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no functions")
}

func TestValidate_RootMustBeMain(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: NewCondBlock(BlockIf, NewConstant(1, TypeBool)),
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "main block")
	assert.Contains(t, errs[0].Error(), "in function main")
}

func TestValidate_ConditionRequired(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: NewBlock(BlockMain,
				NewBlock(BlockIf)), // if without a condition
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "missing its condition")
}

func TestValidate_ConditionForbiddenOnMain(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: &AstBlock{Kind: BlockMain, Condition: NewConstant(1, TypeBool)},
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "must not carry a condition")
}

func TestValidate_ElseNeedsConditionalSibling(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: NewBlock(BlockMain,
				NewBlock(BlockElse)),
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "does not follow an if")
}

func TestValidate_ElseSeparatedFromIf(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: NewBlock(BlockMain,
				NewCondBlock(BlockIf, NewConstant(1, TypeBool)),
				&AstComment{Text: "breaks the chain"},
				NewBlock(BlockElse)),
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
}

func TestValidate_NestedMainBlock(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: NewBlock(BlockMain,
				NewBlock(BlockMain)),
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "nested")
}

func TestValidate_BareOperandStatement(t *testing.T) {
	program := &StructuredProgramInfo{
		Functions: []StructuredFunction{{
			Name: "main",
			Body: NewBlock(BlockMain,
				NewConstant(0, TypeU32)),
		}},
	}

	errs, err := Validate(program)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "bare operand")
}

func TestValidate_CallTargets(t *testing.T) {
	tests := []struct {
		name    string
		callee  AstNode
		wantErr string
	}{
		{
			name:    "out of range",
			callee:  NewConstant(7, TypeU32),
			wantErr: "call targets function 7",
		},
		{
			name:    "entry function",
			callee:  NewConstant(0, TypeU32),
			wantErr: "targets the entry function",
		},
		{
			name:    "non-constant callee",
			callee:  NewLocal(0, TypeU32),
			wantErr: "constant function index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := &StructuredProgramInfo{
				Functions: []StructuredFunction{
					{
						Name: "main",
						Body: NewBlock(BlockMain,
							NewOperation(InstCall, tt.callee)),
					},
					{
						Name: "helper",
						Body: NewBlock(BlockMain),
					},
				},
			}

			errs, err := Validate(program)
			require.NoError(t, err)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.wantErr)
		})
	}
}
