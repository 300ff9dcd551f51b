package msl

import (
	"fmt"

	"github.com/gogpu/mslgen/ir"
)

// Namespace is the MSL metal namespace prefix.
const Namespace = "metal::"

// Stage aggregate type and entry point names.
const (
	vertexInName    = "VertexIn"
	vertexOutName   = "VertexOut"
	fragmentInName  = "FragmentIn"
	fragmentOutName = "FragmentOut"
	supportDataName = "SupportData"

	vertexEntryName   = "vertexMain"
	fragmentEntryName = "fragmentMain"
	computeEntryName  = "kernelMain"
)

// typeName returns the MSL name for a semantic type.
func typeName(typ ir.VarType) string {
	switch typ {
	case ir.TypeVoid:
		return "void"
	case ir.TypeBool:
		return "bool"
	case ir.TypeF32:
		return "float"
	case ir.TypeS32:
		return "int"
	case ir.TypeU32:
		return "uint"
	}
	return fmt.Sprintf("invalid_type_%d", typ)
}

// reinterpretCast converts an expression from one semantic type to another.
// Conversions between the 32-bit numeric types are bit-exact as_type casts;
// conversions to and from bool are value conversions, since bool has no
// defined 32-bit pattern.
func reinterpretCast(expr string, srcType, dstType ir.VarType) string {
	if srcType == dstType {
		return expr
	}

	if dstType == ir.TypeBool {
		switch srcType {
		case ir.TypeF32:
			return fmt.Sprintf("(%s != 0.0)", expr)
		default:
			return fmt.Sprintf("(%s != 0)", expr)
		}
	}

	if srcType == ir.TypeBool {
		switch dstType {
		case ir.TypeF32:
			return fmt.Sprintf("(%s ? 1.0 : 0.0)", expr)
		case ir.TypeU32:
			return fmt.Sprintf("(%s ? 1u : 0u)", expr)
		default:
			return fmt.Sprintf("(%s ? 1 : 0)", expr)
		}
	}

	// Numeric to numeric: bit-exact reinterpretation.
	return fmt.Sprintf("as_type<%s>(%s)", typeName(dstType), expr)
}
