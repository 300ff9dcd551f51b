package msl

import (
	"fmt"

	"github.com/gogpu/mslgen/ir"
)

// constantBufferSlots is the vec4 capacity declared for each constant buffer.
const constantBufferSlots = 4096

// declareGlobals writes the MSL header and the struct declarations the entry
// signature refers to: buffer layouts, the stage IO aggregates and, when
// helper functions exist, the support-data struct.
func (c *CodeGenContext) declareGlobals() {
	c.writeHeader()
	c.declareBufferStructs()
	c.declareStageIO()
	c.declareSupportData()
}

// writeHeader writes the MSL file header.
func (c *CodeGenContext) writeHeader() {
	c.writeLine("#include <metal_stdlib>")
	c.writeLine("#include <simd/simd.h>")
	c.writeLine("")
	c.writeLine("using metal::uint;")
	c.writeLine("")
}

// bufferStructName returns the layout struct name for a buffer resource.
func bufferStructName(name string) string {
	return name + "_t"
}

// declareBufferStructs writes one layout struct per buffer in registry order.
func (c *CodeGenContext) declareBufferStructs() {
	for _, cb := range c.options.Resources.ConstantBuffers() {
		c.writeLine("struct %s {", bufferStructName(cb.Name))
		c.enterScope()
		c.writeLine("%sfloat4 data[%d];", Namespace, constantBufferSlots)
		c.leaveScope()
		c.writeLine("};")
		c.writeLine("")
	}

	for _, sb := range c.options.Resources.StorageBuffers() {
		c.writeLine("struct %s {", bufferStructName(sb.Name))
		c.enterScope()
		c.writeLine("uint data[1];")
		c.leaveScope()
		c.writeLine("};")
		c.writeLine("")
	}
}

// declareStageIO writes the input/output aggregates for the target stage.
func (c *CodeGenContext) declareStageIO() {
	switch c.options.Stage {
	case ir.StageVertex:
		if c.program.UsedInputAttributes != 0 {
			c.writeLine("struct %s {", vertexInName)
			c.enterScope()
			for i := 0; i < 32; i++ {
				if c.program.UsedInputAttributes&(1<<uint(i)) == 0 {
					continue
				}
				c.writeLine("%sfloat4 attr%d [[attribute(%d)]];", Namespace, i, i)
			}
			c.leaveScope()
			c.writeLine("};")
			c.writeLine("")
		}

		c.writeLine("struct %s {", vertexOutName)
		c.enterScope()
		c.writeLine("%sfloat4 position [[position]];", Namespace)
		c.leaveScope()
		c.writeLine("};")
		c.writeLine("")

	case ir.StageFragment:
		c.writeLine("struct %s {", fragmentInName)
		c.enterScope()
		c.writeLine("%sfloat4 position [[position]];", Namespace)
		c.leaveScope()
		c.writeLine("};")
		c.writeLine("")

		c.writeLine("struct %s {", fragmentOutName)
		c.enterScope()
		c.writeLine("%sfloat4 color [[color(0)]];", Namespace)
		c.leaveScope()
		c.writeLine("};")
		c.writeLine("")
	}
}

// declareSupportData writes the support struct helpers reach program-wide
// state through. Only needed when the program has helper functions.
func (c *CodeGenContext) declareSupportData() {
	if len(c.program.Functions) <= 1 {
		return
	}

	c.writeLine("struct %s {", supportDataName)
	c.enterScope()
	c.writeLine("uint flags;")
	c.leaveScope()
	c.writeLine("};")
	c.writeLine("")
}

// declareLocals writes the entry point's output aggregate and support
// instance, then the function's local variables.
func (c *CodeGenContext) declareLocals(fn *ir.StructuredFunction, isEntry bool) {
	wrote := false

	if isEntry {
		if c.options.Stage != ir.StageCompute {
			_, _, returnType := entryConvention(c.options.Stage)
			c.writeLine("%s %s = {};", returnType, outputVarName)
			wrote = true
		}
		if len(c.program.Functions) > 1 {
			c.writeLine("%s %s = {};", supportDataName, supportVarName)
			wrote = true
		}
	}

	for i, local := range fn.Locals {
		name := local.Name
		if name == "" {
			name = fmt.Sprintf("local_%d", i)
		}
		localType := typeName(local.Type)
		c.writeLine("%s %s = %s();", localType, name, localType)
		wrote = true
	}

	if wrote {
		c.writeLine("")
	}
}
