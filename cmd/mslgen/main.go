// Command mslgen emits Metal Shading Language for a built-in demo program.
//
// It exists to eyeball backend output while developing: pick a stage and the
// tool prints the generated source for a small representative program.
//
// Usage:
//
//	mslgen --stage fragment
//	mslgen --stage compute --no-divergent-barriers
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gogpu/mslgen"
	"github.com/gogpu/mslgen/ir"
)

var (
	stageName           string
	noDivergentBarriers bool
	verbose             bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "mslgen",
		Short: "Generate MSL for a built-in demo program",
		RunE:  run,
	}

	cmd.Flags().StringVar(&stageName, "stage", "fragment", "shader stage (vertex, fragment, compute)")
	cmd.Flags().BoolVar(&noDivergentBarriers, "no-divergent-barriers", false,
		"generate for a host that cannot execute barriers on divergent paths")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log generation diagnostics")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	stage, err := parseStage(stageName)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	options := mslgen.DefaultOptions()
	options.Generation.Stage = stage
	options.Generation.Host.SupportsDivergentBarriers = !noDivergentBarriers
	options.Generation.Logger = logger
	options.Generation.Resources.AddConstantBuffer("cb0", 0)
	options.Generation.Resources.AddStorageBuffer("sb0", 0)
	options.Generation.Resources.AddTexture(ir.Texture{Name: "tex0", Binding: 0, Dim: ir.Texture2D})

	code, err := mslgen.Compile(demoProgram(stage), options)
	if err != nil {
		return err
	}
	if code == "" {
		return fmt.Errorf("stage %s is not supported", stage)
	}

	fmt.Fprint(cmd.OutOrStdout(), code)
	return nil
}

func parseStage(name string) (ir.ShaderStage, error) {
	switch name {
	case "vertex":
		return ir.StageVertex, nil
	case "fragment":
		return ir.StageFragment, nil
	case "compute":
		return ir.StageCompute, nil
	}
	return 0, fmt.Errorf("unknown stage %q (want vertex, fragment or compute)", name)
}

// demoProgram builds a small program with one helper and one entry function,
// exercising conditions, assignments, coercions and a barrier.
func demoProgram(stage ir.ShaderStage) *ir.StructuredProgramInfo {
	half := ir.NewConstant(math.Float32bits(0.5), ir.TypeF32)

	// Helper: scale(x) = x * 0.5, doubled when x > 1.0.
	helperBody := ir.NewBlock(ir.BlockMain,
		ir.NewAssignment(
			ir.NewLocal(0, ir.TypeF32),
			ir.NewOperation(ir.InstMultiply, ir.NewArgument(0, ir.TypeF32), half)),
		ir.NewCondBlock(ir.BlockIf,
			ir.NewOperation(ir.InstCompareGreater,
				ir.NewArgument(0, ir.TypeF32),
				ir.NewConstant(math.Float32bits(1.0), ir.TypeF32)),
			ir.NewAssignment(
				ir.NewLocal(0, ir.TypeF32),
				ir.NewOperation(ir.InstAdd,
					ir.NewLocal(0, ir.TypeF32),
					ir.NewLocal(0, ir.TypeF32)))),
		ir.NewOperation(ir.InstReturn, ir.NewLocal(0, ir.TypeF32)))

	entryBody := ir.NewBlock(ir.BlockMain)
	entryBody.AddNode(&ir.AstComment{Text: "demo program"})
	if stage == ir.StageCompute {
		entryBody.AddNode(ir.NewOperation(ir.InstBarrier))
	}
	entryBody.AddNode(ir.NewAssignment(
		ir.NewLocal(0, ir.TypeF32),
		ir.NewOperation(ir.InstCall,
			ir.NewConstant(1, ir.TypeU32),
			ir.NewConstant(math.Float32bits(2.0), ir.TypeF32))))

	return &ir.StructuredProgramInfo{
		Functions: []ir.StructuredFunction{
			{
				Name:   "main",
				Locals: []ir.LocalVariable{{Name: "result", Type: ir.TypeF32}},
				Body:   entryBody,
			},
			{
				Name:        "scale",
				InArguments: []ir.VarType{ir.TypeF32},
				ReturnType:  ir.TypeF32,
				Locals:      []ir.LocalVariable{{Name: "scaled", Type: ir.TypeF32}},
				Body:        helperBody,
			},
		},
	}
}
