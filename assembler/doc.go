// Package assembler implements the two pass, hazard padding assembler for the
// pipeasm instruction set.
//
// Source programs hold one statement per line:
//
//	LOOP                 ; label, upper-case only
//	add R1, R2, R3       ; instruction, operands split by blanks or commas
//	.equ STEP 4          ; equate
//	ldi R4 R0 $(STEP*2)  ; compile-time expression
//
// The first pass binds every label to a provisional address. The second pass
// encodes instructions, inserting no-op words in front of any instruction that
// reads a register whose write latency has not yet elapsed. Each inserted no-op
// shifts every label bound beyond it, so forward references always resolve to
// the final address.
package assembler
