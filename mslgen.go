// Package mslgen generates Metal Shading Language source from structured
// shader IR.
//
// mslgen is the backend stage of a shader cross-compiler: a front end
// produces an already-optimized, structured program (ir.StructuredProgramInfo)
// and mslgen turns it into MSL text for a vertex, fragment or compute stage,
// tailored to the host driver's capabilities.
//
// Example usage:
//
//	program := &ir.StructuredProgramInfo{
//	    Functions: []ir.StructuredFunction{{
//	        Name: "main",
//	        Body: ir.NewBlock(ir.BlockMain),
//	    }},
//	}
//
//	options := mslgen.DefaultOptions()
//	options.Generation.Stage = ir.StageFragment
//
//	code, err := mslgen.Compile(program, options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For lower-level access, use the msl package directly:
//
//	code, err := msl.Generate(program, msl.DefaultOptions())
package mslgen

import (
	"fmt"

	"github.com/gogpu/mslgen/ir"
	"github.com/gogpu/mslgen/msl"
)

// CompileOptions configures compilation.
type CompileOptions struct {
	// Generation holds the backend's generation parameters.
	Generation msl.Options

	// Validate enables structural validation before code generation.
	Validate bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Generation: msl.DefaultOptions(),
		Validate:   true,
	}
}

// Compile validates a structured program and generates MSL source for it.
// An unsupported shader stage yields an empty string and no error; callers
// must treat empty output as "do not use this shader on this stage".
func Compile(program *ir.StructuredProgramInfo, options CompileOptions) (string, error) {
	if options.Validate {
		errs, err := ir.Validate(program)
		if err != nil {
			return "", fmt.Errorf("validate: %w", err)
		}
		if len(errs) > 0 {
			return "", fmt.Errorf("validate: %d errors, first: %w", len(errs), errs[0])
		}
	}

	return msl.Generate(program, options.Generation)
}
