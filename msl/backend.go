package msl

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gogpu/mslgen/ir"
)

// storageBindingOffset is added to every storage buffer's declared binding.
// Constant buffers occupy the low buffer slots, so storage buffers are
// renumbered into a disjoint range at generation time.
const storageBindingOffset = 15

// HostCapabilities describes what the host graphics driver supports.
type HostCapabilities struct {
	// SupportsDivergentBarriers reports whether barriers are safe to
	// execute on divergent control-flow paths. When false, barriers the
	// generator cannot prove uniform are dropped.
	SupportsDivergentBarriers bool
}

// Options configures MSL code generation.
type Options struct {
	// Stage is the target shader stage. Only vertex, fragment and compute
	// are supported; any other stage makes Generate return an empty string.
	Stage ir.ShaderStage

	// Host describes the host driver's capabilities.
	Host HostCapabilities

	// Resources is the program's resource registry. Iteration order is
	// insertion order and determines emitted parameter order.
	Resources ir.ResourceRegistry

	// Logger receives non-fatal diagnostics (unsupported stage, dropped
	// barriers). Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns sensible default options for MSL generation.
func DefaultOptions() Options {
	return Options{
		Stage:  ir.StageCompute,
		Logger: zap.NewNop(),
	}
}

// Generate produces MSL source for a structured program.
//
// An unsupported shader stage is not an error: Generate logs a warning and
// returns an empty string, which callers must treat as "do not use". A
// malformed program (unknown block or leaf kind) aborts with an error and
// returns no partial text.
func Generate(program *ir.StructuredProgramInfo, options Options) (string, error) {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	switch options.Stage {
	case ir.StageVertex, ir.StageFragment, ir.StageCompute:
	default:
		options.Logger.Warn("unsupported shader stage",
			zap.Stringer("stage", options.Stage))
		return "", nil
	}

	if len(program.Functions) == 0 {
		return "", fmt.Errorf("msl: program has no functions")
	}

	ctx := newCodeGenContext(program, &options)

	ctx.declareGlobals()

	if len(program.Functions) > 1 {
		for i := 1; i < len(program.Functions); i++ {
			if err := ctx.emitFunction(&program.Functions[i], false); err != nil {
				return "", fmt.Errorf("msl: %w", err)
			}
			ctx.writeLine("")
		}
	}

	if err := ctx.emitFunction(ctx.program.EntryFunction(), true); err != nil {
		return "", fmt.Errorf("msl: %w", err)
	}

	return ctx.String(), nil
}
