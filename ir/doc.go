// Package ir defines the structured intermediate representation consumed
// by the mslgen backend.
//
// The IR is produced upstream by a front end that has already performed
// translation from shader bytecode, control-flow recovery, and dead-code
// elimination. It arrives here fully structured: every function body is a
// tree of blocks (if/else-if/else chains and do-while loops) whose leaves
// are operations, assignments, and comments. The backend only walks this
// tree and emits text; it never mutates it.
//
// # Structure
//
// A StructuredProgramInfo contains:
//   - Functions: all function definitions; index 0 is the entry point
//   - UsedInputAttributes: a bitmask of vertex input attributes actually read
//
// Each StructuredFunction owns one AstBlock of kind BlockMain at the root of
// its body. Nested blocks carry a condition node for If/ElseIf/DoWhile forms.
//
// # Invariants
//
// The producer guarantees (and Validate checks):
//   - exactly one BlockMain per function body, at the root
//   - a condition is present iff the block kind requires one
//   - ElseIf/Else blocks directly follow a conditional sibling
//
// These are caller guarantees: generation does not re-validate them.
package ir
