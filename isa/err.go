package isa

import (
	"errors"

	"github.com/ezrec/pipeasm/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrMalformedOperand = errors.New(f("register marker missing"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrImmediateRange   = errors.New(f("immediate out of range"))
	ErrTargetRange      = errors.New(f("jump target out of range"))
)

type ErrUnknownMnemonic string

func (em ErrUnknownMnemonic) Error() string {
	return f("mnemonic '%v' unknown", string(em))
}
