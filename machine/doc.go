// Package machine implements the Little Man Plus machine and its assembler.
//
// The machine is a single-accumulator computer with a flat memory of
// MEMORY_SIZE signed 64-bit mailboxes. The same cells hold encoded
// instructions and raw data, so programs may rewrite themselves while
// running. Execution advances one fetch-decode-execute cycle per Step
// call and suspends, rather than blocks, when an INP instruction finds
// no buffered input.
//
// The assembler provides the machine's assembly language: one
// instruction per line, optional line labels, `@label` pointer
// operands, plus equates and compile-time expression evaluation.
package machine
