package isa

import (
	"fmt"
)

// Format is the operand layout of an instruction word.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_N = Format(0) // N
	FORMAT_R = Format(1) // R
	FORMAT_I = Format(2) // I
	FORMAT_J = Format(3) // J
)

// Operands returns the number of source operands taken by the format.
func (format Format) Operands() int {
	switch format {
	case FORMAT_R, FORMAT_I:
		return 3
	case FORMAT_J:
		return 1
	}
	return 0
}

// Registers returns the number of leading register operands of the format.
func (format Format) Registers() int {
	switch format {
	case FORMAT_R:
		return 3
	case FORMAT_I:
		return 2
	}
	return 0
}

// Mnemonic is an instruction keyword.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	NOP  = Mnemonic(0) // nop
	ADD  = Mnemonic(1) // add
	SUB  = Mnemonic(2) // sub
	STW  = Mnemonic(3) // stw
	LDI  = Mnemonic(4) // ldi
	MOV  = Mnemonic(5) // mov
	JMP  = Mnemonic(6) // jmp
	BEQ  = Mnemonic(7) // beq
	BNEQ = Mnemonic(8) // bneq
)

type mnemonicInfo struct {
	opcode  uint32 // 6-bit opcode.
	format  Format // Operand layout.
	latency int    // Cycles before a written register is readable.
	writes  bool   // First register operand is a destination.
}

var mnemonicTable = [...]mnemonicInfo{
	NOP:  {0b000000, FORMAT_N, 0, false},
	ADD:  {0b000001, FORMAT_R, 4, true},
	SUB:  {0b000010, FORMAT_R, 4, true},
	STW:  {0b001100, FORMAT_I, 4, false},
	LDI:  {0b001101, FORMAT_I, 4, true},
	MOV:  {0b001110, FORMAT_I, 4, true},
	JMP:  {0b001010, FORMAT_J, 4, false},
	BEQ:  {0b000111, FORMAT_I, 4, false},
	BNEQ: {0b001000, FORMAT_I, 4, false},
}

// Mnemonics returns all of the defined mnemonics, in opcode table order.
func Mnemonics() (list []Mnemonic) {
	for op := range Mnemonic(len(mnemonicTable)) {
		list = append(list, op)
	}
	return
}

// ParseMnemonic converts an instruction keyword to its Mnemonic.
func ParseMnemonic(word string) (op Mnemonic, err error) {
	for _, op = range Mnemonics() {
		if op.String() == word {
			return
		}
	}

	op = NOP
	err = ErrUnknownMnemonic(word)
	return
}

// Opcode returns the 6-bit opcode of the mnemonic.
func (op Mnemonic) Opcode() uint32 {
	return mnemonicTable[op].opcode
}

// Format returns the operand layout of the mnemonic.
func (op Mnemonic) Format() Format {
	return mnemonicTable[op].format
}

// Latency returns the default write latency of the mnemonic, in cycles.
func (op Mnemonic) Latency() int {
	return mnemonicTable[op].latency
}

// Writes returns true if the first register operand is written.
func (op Mnemonic) Writes() bool {
	return mnemonicTable[op].writes
}

// Word is a single encoded instruction.
type Word uint32

const (
	WORD_BITS      = 32
	OPCODE_SHIFT   = 26
	OPCODE_MASK    = 0x3f
	OPERAND_MASK   = 0x3ff_ffff
	REGISTER_MASK  = 0x1f
	IMMEDIATE_MASK = 0xffff

	IMMEDIATE_MIN = -0x8000 // Smallest signed immediate.
	IMMEDIATE_MAX = 0xffff  // Largest unsigned immediate.
	TARGET_MAX    = OPERAND_MASK

	WORD_NOP = Word(0) // The all-zero no-op.
)

// makeWord joins an opcode and an operand field.
func makeWord(op Mnemonic, operand uint32) Word {
	return Word(((op.Opcode() & OPCODE_MASK) << OPCODE_SHIFT) | (operand & OPERAND_MASK))
}

// MakeWordR creates a register-register-register instruction.
func MakeWordR(op Mnemonic, rd, rs, rt Register) Word {
	return makeWord(op, (uint32(rd&REGISTER_MASK)<<21)|(uint32(rs&REGISTER_MASK)<<16)|(uint32(rt&REGISTER_MASK)<<11))
}

// MakeWordI creates a register-register-immediate instruction.
func MakeWordI(op Mnemonic, ra, rb Register, imm uint16) Word {
	return makeWord(op, (uint32(ra&REGISTER_MASK)<<21)|(uint32(rb&REGISTER_MASK)<<16)|uint32(imm))
}

// MakeWordJ creates an absolute jump instruction.
func MakeWordJ(op Mnemonic, target uint32) Word {
	return makeWord(op, target)
}

// MakeWordN creates a no-op.
func MakeWordN() Word {
	return WORD_NOP
}

// Immediate converts a signed value to its 16-bit two's complement field.
func Immediate(value int) (imm uint16, err error) {
	if value < IMMEDIATE_MIN || value > IMMEDIATE_MAX {
		err = ErrImmediateRange
		return
	}

	imm = uint16(value & IMMEDIATE_MASK)
	return
}

// Target converts an absolute address to a jump target field.
func Target(address int) (target uint32, err error) {
	if address < 0 || address > TARGET_MAX {
		err = ErrTargetRange
		return
	}

	target = uint32(address)
	return
}

// Opcode returns the 6-bit opcode of the word.
func (word Word) Opcode() uint32 {
	return (uint32(word) >> OPCODE_SHIFT) & OPCODE_MASK
}

// Mnemonic returns the mnemonic for the opcode of the word.
func (word Word) Mnemonic() (op Mnemonic, ok bool) {
	opcode := word.Opcode()
	for _, op = range Mnemonics() {
		if op.Opcode() == opcode {
			ok = true
			return
		}
	}

	op = NOP
	return
}

// DecodeR decodes the registers of an R format word.
func (word Word) DecodeR() (rd, rs, rt Register) {
	rd = Register((word >> 21) & REGISTER_MASK)
	rs = Register((word >> 16) & REGISTER_MASK)
	rt = Register((word >> 11) & REGISTER_MASK)
	return
}

// DecodeI decodes the registers and signed immediate of an I format word.
func (word Word) DecodeI() (ra, rb Register, imm int16) {
	ra = Register((word >> 21) & REGISTER_MASK)
	rb = Register((word >> 16) & REGISTER_MASK)
	imm = int16(uint16(word & IMMEDIATE_MASK))
	return
}

// DecodeJ decodes the absolute target of a J format word.
func (word Word) DecodeJ() (target uint32) {
	target = uint32(word) & OPERAND_MASK
	return
}

// Registers returns the register operands of the word, in operand order.
func (word Word) Registers() (regs []Register) {
	op, ok := word.Mnemonic()
	if !ok {
		return
	}

	switch op.Format() {
	case FORMAT_R:
		rd, rs, rt := word.DecodeR()
		regs = []Register{rd, rs, rt}
	case FORMAT_I:
		ra, rb, _ := word.DecodeI()
		regs = []Register{ra, rb}
	}

	return
}

// Binary returns the word as 32 binary digits, most significant first.
func (word Word) Binary() string {
	return fmt.Sprintf("%032b", uint32(word))
}

// String returns the assembly language representation of the word.
func (word Word) String() (out string) {
	op, ok := word.Mnemonic()
	if !ok {
		out = fmt.Sprintf("?0x%08x", uint32(word))
		return
	}

	switch op.Format() {
	case FORMAT_R:
		rd, rs, rt := word.DecodeR()
		out = fmt.Sprintf("%v %v %v %v", op, rd, rs, rt)
	case FORMAT_I:
		ra, rb, imm := word.DecodeI()
		out = fmt.Sprintf("%v %v %v %d", op, ra, rb, imm)
	case FORMAT_J:
		out = fmt.Sprintf("%v %d", op, word.DecodeJ())
	default:
		out = op.String()
	}

	return
}
