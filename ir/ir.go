package ir

// StructuredProgramInfo is a whole shader program in structured form.
type StructuredProgramInfo struct {
	// Functions holds all function definitions. The function at index 0 is
	// the program entry point; every other index is a helper function.
	Functions []StructuredFunction

	// UsedInputAttributes is a bitmask of the vertex input attribute
	// locations the program actually reads. Bit i set means attribute i
	// is used. Only meaningful for vertex programs.
	UsedInputAttributes uint32
}

// EntryFunction returns the program's entry point.
func (p *StructuredProgramInfo) EntryFunction() *StructuredFunction {
	return &p.Functions[0]
}

// StructuredFunction is a single function definition.
type StructuredFunction struct {
	Name string

	// InArguments and OutArguments are the typed parameter lists, in
	// declaration order. Out arguments are by-reference: writes made by
	// the function are visible to the caller.
	InArguments  []VarType
	OutArguments []VarType

	ReturnType VarType

	Locals []LocalVariable

	// Body is the function body, always a block of kind BlockMain.
	Body *AstBlock
}

// LocalVariable is a function-local variable declaration.
type LocalVariable struct {
	Name string
	Type VarType
}

// ShaderStage identifies the pipeline stage a program targets.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageCompute
	StageGeometry
	StageTessControl
	StageTessEval
)

// String returns the lower-case stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	case StageGeometry:
		return "geometry"
	case StageTessControl:
		return "tess_control"
	case StageTessEval:
		return "tess_eval"
	}
	return "unknown"
}

// VarType is the semantic type of a value: its logical interpretation,
// independent of the 32-bit physical representation shared by the numeric
// kinds. Values crossing an assignment or condition boundary are coerced
// between semantic types by the backend.
type VarType uint8

const (
	TypeVoid VarType = iota
	TypeBool
	TypeF32
	TypeS32
	TypeU32
)

// String returns the semantic type name.
func (t VarType) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeBool:
		return "bool"
	case TypeF32:
		return "f32"
	case TypeS32:
		return "s32"
	case TypeU32:
		return "u32"
	}
	return "invalid"
}
