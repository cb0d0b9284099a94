// Package cpu implements the loader and processor of the Katta system.
//
// The processor has four 32-bit general-purpose registers (A-D), a single
// condition flag, a program pointer over the loaded instruction list, a single
// saved return pointer, a sparse word-addressable memory and a stack growing
// down from the top of the address space. Every bus transaction is emitted to
// a trace.Sink.
//
// The loader (Assembler) assigns sequential load addresses to instructions,
// binds labels to the instruction that follows them, and does no validation;
// malformed instructions are only noticed when executed.
package cpu
