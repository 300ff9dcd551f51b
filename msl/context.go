package msl

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gogpu/mslgen/ir"
)

// CodeGenContext is the mutable state of one Generate call: the output
// buffer, the current indentation depth, the function being emitted, and the
// read-only views of the program, registry and host capabilities. One
// instance exists per call and is discarded when the call returns.
type CodeGenContext struct {
	program *ir.StructuredProgramInfo
	options *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Function context (set during function emission)
	currentFunction *ir.StructuredFunction
	isEntryFunction bool

	// mayHaveReturned is set once a return instruction has been seen
	// anywhere in the current function's traversal. Later barriers can no
	// longer be proven uniform and are dropped when the host lacks
	// divergent barrier support.
	mayHaveReturned bool
}

// newCodeGenContext creates the per-call generation context.
func newCodeGenContext(program *ir.StructuredProgramInfo, options *Options) *CodeGenContext {
	return &CodeGenContext{
		program: program,
		options: options,
	}
}

// String returns the generated MSL source code.
func (c *CodeGenContext) String() string {
	return c.out.String()
}

// logger returns the diagnostics sink.
func (c *CodeGenContext) logger() *zap.Logger {
	return c.options.Logger
}

// Output helpers

// write writes text to the output. If args are provided, uses fmt.Fprintf.
//
//nolint:goprintffuncname
func (c *CodeGenContext) write(format string, args ...any) {
	if len(args) == 0 {
		c.out.WriteString(format)
	} else {
		fmt.Fprintf(&c.out, format, args...)
	}
}

// writeLine writes an indented line with optional format args and a newline.
//
//nolint:goprintffuncname
func (c *CodeGenContext) writeLine(format string, args ...any) {
	c.writeIndent()
	if len(args) == 0 {
		c.out.WriteString(format)
	} else {
		fmt.Fprintf(&c.out, format, args...)
	}
	c.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (c *CodeGenContext) writeIndent() {
	for i := 0; i < c.indent; i++ {
		c.out.WriteString("    ")
	}
}

// enterScope increases indentation.
func (c *CodeGenContext) enterScope() {
	c.indent++
}

// leaveScope decreases indentation.
func (c *CodeGenContext) leaveScope() {
	if c.indent > 0 {
		c.indent--
	}
}
