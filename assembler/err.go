package assembler

import (
	"errors"

	"github.com/ezrec/pipeasm/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrMnemonicMissing    = errors.New(f("mnemonic missing"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandExtra       = errors.New(f("excessive operands"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
	ErrHazardModelInvalid = errors.New(f("hazard model invalid"))
	ErrLatencySyntax      = errors.New(f("latency syntax"))
	ErrPredefineSyntax    = errors.New(f("predefine syntax"))

	// Listing errors
	ErrListingSyntax  = errors.New(f("listing syntax"))
	ErrListingAddress = errors.New(f("listing address out of sequence"))
)

type ErrUnknownLabel string

func (el ErrUnknownLabel) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperand locates an error within the operands of an instruction.
type ErrOperand struct {
	Index int    // Operand position, starting at 1.
	Word  string // Operand text.
	Err   error
}

func (err *ErrOperand) Error() string {
	return f("operand %d '%v' %v", err.Index, err.Word, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an error within the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
