package msl

import (
	"fmt"
	"strings"

	"github.com/gogpu/mslgen/ir"
)

// Parameter names fixed by the calling conventions.
const (
	supportVarName = "support"
	stageInVarName = "in"
	outputVarName  = "out"
)

// emitFunction renders one function: signature, locals, body, and for a
// non-compute entry point the guaranteed trailing return.
func (c *CodeGenContext) emitFunction(fn *ir.StructuredFunction, isEntry bool) error {
	c.currentFunction = fn
	c.isEntryFunction = isEntry
	c.mayHaveReturned = false

	defer func() {
		c.currentFunction = nil
		c.isEntryFunction = false
	}()

	c.writeLine("%s {", c.functionSignature(fn, isEntry))
	c.enterScope()

	c.declareLocals(fn, isEntry)

	if err := c.emitBlock(fn.Body, true); err != nil {
		return err
	}

	// Cover code paths that fall off the end of the body: vertex and
	// fragment entry points must always produce their output aggregate.
	if isEntry && c.options.Stage != ir.StageCompute {
		c.writeLine("return %s;", outputVarName)
	}

	c.leaveScope()
	c.writeLine("}")
	return nil
}

// functionSignature builds the one-line signature for a function.
func (c *CodeGenContext) functionSignature(fn *ir.StructuredFunction, isEntry bool) string {
	if isEntry {
		return c.entrySignature(fn)
	}
	return c.helperSignature(fn)
}

// helperSignature builds the internal calling convention: an inline function
// taking the support-data pointer first, then the in arguments, then the out
// arguments as thread-space pointers.
func (c *CodeGenContext) helperSignature(fn *ir.StructuredFunction) string {
	args := []string{fmt.Sprintf("thread %s* %s", supportDataName, supportVarName)}

	index := 0
	for _, typ := range fn.InArguments {
		args = append(args, fmt.Sprintf("%s %s", typeName(typ), argumentName(uint32(index))))
		index++
	}
	for _, typ := range fn.OutArguments {
		args = append(args, fmt.Sprintf("thread %s* %s", typeName(typ), argumentName(uint32(index))))
		index++
	}

	return fmt.Sprintf("inline %s %s(%s)", typeName(fn.ReturnType), fn.Name, strings.Join(args, ", "))
}

// entrySignature builds the stage calling convention for the entry point.
func (c *CodeGenContext) entrySignature(fn *ir.StructuredFunction) string {
	var args []string

	// Stage input aggregate. Vertex programs only take one when at least
	// one input attribute is read; fragment programs always do.
	switch c.options.Stage {
	case ir.StageVertex:
		if c.program.UsedInputAttributes != 0 {
			args = append(args, fmt.Sprintf("%s %s [[stage_in]]", vertexInName, stageInVarName))
		}
	case ir.StageFragment:
		args = append(args, fmt.Sprintf("%s %s [[stage_in]]", fragmentInName, stageInVarName))
	}

	// The function's own arguments, out arguments still by reference.
	index := 0
	for _, typ := range fn.InArguments {
		args = append(args, fmt.Sprintf("%s %s", typeName(typ), argumentName(uint32(index))))
		index++
	}
	for _, typ := range fn.OutArguments {
		args = append(args, fmt.Sprintf("thread %s* %s", typeName(typ), argumentName(uint32(index))))
		index++
	}

	// Stage identifier parameters.
	switch c.options.Stage {
	case ir.StageVertex:
		args = append(args,
			"uint vertexId [[vertex_id]]",
			"uint instanceId [[instance_id]]")
	case ir.StageCompute:
		args = append(args,
			Namespace+"uint3 workgroupId [[threadgroup_position_in_grid]]",
			Namespace+"uint3 globalId [[thread_position_in_grid]]",
			Namespace+"uint3 localId [[thread_position_in_threadgroup]]")
	}

	args = append(args, c.resourceParameters()...)

	keyword, name, returnType := entryConvention(c.options.Stage)
	return fmt.Sprintf("%s %s %s(%s)", keyword, returnType, name, strings.Join(args, ", "))
}

// entryConvention returns the stage keyword, forced entry name and forced
// return type for a supported stage.
func entryConvention(stage ir.ShaderStage) (keyword, name, returnType string) {
	switch stage {
	case ir.StageVertex:
		return "vertex", vertexEntryName, vertexOutName
	case ir.StageFragment:
		return "fragment", fragmentEntryName, fragmentOutName
	default:
		return "kernel", computeEntryName, "void"
	}
}

// resourceParameters renders the registry's resources as entry parameters, in
// registry order: constant buffers, storage buffers, then textures with their
// paired samplers.
func (c *CodeGenContext) resourceParameters() []string {
	var args []string

	for _, cb := range c.options.Resources.ConstantBuffers() {
		args = append(args, fmt.Sprintf("constant %s* %s [[buffer(%d)]]",
			bufferStructName(cb.Name), cb.Name, cb.Binding))
	}

	for _, sb := range c.options.Resources.StorageBuffers() {
		args = append(args, fmt.Sprintf("device %s* %s [[buffer(%d)]]",
			bufferStructName(sb.Name), sb.Name, sb.Binding+storageBindingOffset))
	}

	for _, tex := range c.options.Resources.Textures() {
		args = append(args, fmt.Sprintf("%s%s<float> %s [[texture(%d)]]",
			Namespace, tex.Dim, tex.Name, tex.Binding))
		if !tex.Separate {
			args = append(args, fmt.Sprintf("%ssampler %sSampler [[sampler(%d)]]",
				Namespace, tex.Name, tex.Binding))
		}
	}

	return args
}
