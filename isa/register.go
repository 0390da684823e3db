package isa

import (
	"fmt"
	"strconv"
)

const (
	NUM_REGISTERS   = 32  // Architectural registers.
	REGISTER_MARKER = 'R' // Prefix of every register operand.
)

// Register is an architectural register index.
type Register uint8

// ParseRegister parses a register operand such as 'R17'.
func ParseRegister(word string) (reg Register, err error) {
	if len(word) == 0 || word[0] != REGISTER_MARKER {
		err = ErrMalformedOperand
		return
	}

	index, err := strconv.ParseUint(word[1:], 10, 8)
	if err != nil || index >= NUM_REGISTERS {
		err = ErrRegisterInvalid
		return
	}

	reg = Register(index)
	return
}

func (reg Register) String() string {
	return fmt.Sprintf("%c%d", REGISTER_MARKER, uint8(reg))
}
