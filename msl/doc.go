// Package msl implements Metal Shading Language (MSL) code generation for
// structured shader IR.
//
// MSL is Apple's shader language for the Metal graphics API. It is based on
// C++14 with extensions for GPU programming, including explicit address
// spaces, attribute-based parameter binding, and a metal:: namespace for
// standard library functions.
//
// # Usage
//
// To generate MSL from a structured program:
//
//	options := msl.DefaultOptions()
//	options.Stage = ir.StageFragment
//
//	code, err := msl.Generate(program, options)
//	if err != nil {
//	    return err
//	}
//	if code == "" {
//	    // Unsupported shader stage; a warning was logged.
//	}
//
// # Calling Conventions
//
// Helper functions (every function except index 0) use a uniform internal
// convention: an inline function taking a pointer to the program's support
// data first, then the in arguments, then the out arguments as thread-space
// pointers.
//
// The entry function uses the stage convention:
//   - vertex: "vertexMain" returning VertexOut, with [[stage_in]],
//     [[vertex_id]] and [[instance_id]] parameters
//   - fragment: "fragmentMain" returning FragmentOut, with [[stage_in]]
//   - kernel: "kernelMain" returning void, with the threadgroup/thread
//     position parameters
//
// Every entry signature then appends the program's resources: constant
// buffers at their declared [[buffer(n)]] slot, storage buffers renumbered
// to [[buffer(n+15)]], and textures at [[texture(n)]] with a paired
// [[sampler(n)]] unless the texture is declared separate.
//
// # Barrier Safety
//
// Synchronization barriers executed on divergent control-flow paths can hang
// the GPU. When the host reports no support for divergent barriers, a barrier
// is emitted only from the outermost block of the entry function before any
// return has been seen; every other barrier is dropped and logged. This is a
// deliberately conservative approximation of "provably uniform control flow".
package msl
