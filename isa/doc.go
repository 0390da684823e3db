// Package isa describes the instruction set consumed by the pipeasm assembler.
//
// Every instruction is a single 32-bit word: a 6-bit opcode in the top bits
// followed by a 26-bit operand field whose layout depends on the format of the
// mnemonic (R, I, J or N). The processor has 32 general-purpose registers
// (R0-R31) and an in-order pipeline, where a written register only becomes
// readable after the latency of the writing mnemonic has elapsed.
package isa
