// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package assembler

import (
	"bufio"
	"io"
	"log"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/pipeasm/isa"
)

// Assembler is a two pass, hazard padding assembler.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Hazard  HazardModel // Register read/write bookkeeping model.
	Linked  bool        // If set, label operands are re-encoded against the final label addresses.

	Label  LabelTable        // Jump labels to instruction addresses.
	Equate map[string]string // Map of equates.

	latency   map[isa.Mnemonic]int // Latency overrides.
	predefine map[string]string    // Predefines
	hazards   HazardTracker        // Register cooldowns.
	ip        int                  // Address of the next word.
	code      []Instruction        // Emitted words.
}

// sourceLine is a comment-free line of source text.
type sourceLine struct {
	lineNo int
	text   string
	kind   LineKind
}

// SetLatency overrides the write latency of a mnemonic.
func (asm *Assembler) SetLatency(op isa.Mnemonic, cycles int) {
	if asm.latency == nil {
		asm.latency = make(map[isa.Mnemonic]int)
	}
	asm.latency[op] = max(cycles, 0)
}

// SetLatencies parses a 'mnemonic=cycles[,...]' list of latency overrides.
func (asm *Assembler) SetLatencies(list string) (err error) {
	for item := range strings.SplitSeq(list, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			err = ErrLatencySyntax
			return
		}
		var op isa.Mnemonic
		op, err = isa.ParseMnemonic(name)
		if err != nil {
			return
		}
		var cycles int
		cycles, err = strconv.Atoi(value)
		if err != nil || cycles < 0 {
			err = ErrLatencySyntax
			return
		}
		asm.SetLatency(op, cycles)
	}

	return
}

// Latency returns the write latency of a mnemonic, in words.
func (asm *Assembler) Latency(op isa.Mnemonic) int {
	cycles, ok := asm.latency[op]
	if ok {
		return cycles
	}

	return op.Latency()
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []sourceLine
	var lineno int

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line := stripComment(text)
		lines = append(lines, sourceLine{lineNo: lineno, text: line, kind: Classify(line)})
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	asm.Label.Reset()
	asm.resetEquates()
	asm.code = asm.code[:0]

	err = asm.firstPass(lines)
	if err != nil {
		return
	}

	err = asm.secondPass(lines)
	if err != nil {
		return
	}

	if asm.Linked {
		err = asm.link()
		if err != nil {
			return
		}
	}

	if asm.Verbose {
		for name, ip := range asm.Label.All() {
			log.Printf("label %v: %v\n", name, ip)
		}
	}

	prog = &Program{
		Instructions: slices.Clone(asm.code),
		Labels:       asm.Label.Map(),
	}

	return
}

// firstPass binds every label to its provisional address.
func (asm *Assembler) firstPass(lines []sourceLine) (err error) {
	asm.ip = 0

	for _, line := range lines {
		switch line.kind {
		case LINE_LABEL:
			asm.Label.Bind(line.text, asm.ip)
		case LINE_INSTRUCTION:
			asm.ip++
		case LINE_DIRECTIVE:
			err = asm.directive(line.text, line.lineNo)
			if err != nil {
				err = &ErrSyntax{LineNo: line.lineNo, Line: line.text, Err: err}
				return
			}
		}
	}

	return
}

// secondPass emits every instruction, padding register hazards.
func (asm *Assembler) secondPass(lines []sourceLine) (err error) {
	asm.ip = 0
	asm.hazards.Reset()

	for _, line := range lines {
		switch line.kind {
		case LINE_EMPTY:
			if asm.Verbose {
				log.Printf("%v: empty line\n", line.lineNo)
			}
		case LINE_LABEL:
			// Unchanged, unless a duplicate label moved it.
			asm.Label.Bind(line.text, asm.ip)
		case LINE_INSTRUCTION:
			err = asm.assemble(line.text, line.lineNo)
			if err != nil {
				err = &ErrSyntax{LineNo: line.lineNo, Line: line.text, Err: err}
				return
			}
		}
	}

	return
}

// assemble encodes one instruction line.
func (asm *Assembler) assemble(line string, lineno int) (err error) {
	words, err := asm.expandLine(line, lineno)
	if err != nil {
		return
	}

	if len(words) == 0 {
		err = ErrMnemonicMissing
		return
	}

	op, err := isa.ParseMnemonic(words[0])
	if err != nil {
		return
	}

	format := op.Format()
	operands := words[1:]
	switch {
	case len(operands) < format.Operands():
		err = ErrOperandMissing
		return
	case len(operands) > format.Operands():
		err = ErrOperandExtra
		return
	}

	regs := make([]isa.Register, format.Registers())
	for n := range regs {
		regs[n], err = isa.ParseRegister(operands[n])
		if err != nil {
			err = &ErrOperand{Index: n + 1, Word: operands[n], Err: err}
			return
		}
	}

	for _, reg := range asm.Hazard.Reads(op, regs) {
		for asm.hazards.Remaining(reg) > 0 {
			asm.pad(reg, lineno)
		}
	}

	var code isa.Word
	var label string
	switch format {
	case isa.FORMAT_R:
		code = isa.MakeWordR(op, regs[0], regs[1], regs[2])
	case isa.FORMAT_I:
		var imm uint16
		if Classify(operands[2]) == LINE_LABEL {
			label = operands[2]
			imm, err = asm.relative(label, asm.ip)
		} else {
			imm, err = asm.immediate(operands[2])
		}
		if err != nil {
			err = &ErrOperand{Index: 3, Word: operands[2], Err: err}
			return
		}
		code = isa.MakeWordI(op, regs[0], regs[1], imm)
	case isa.FORMAT_J:
		var target uint32
		label = operands[0]
		target, err = asm.target(label)
		if err != nil {
			err = &ErrOperand{Index: 1, Word: operands[0], Err: err}
			return
		}
		code = isa.MakeWordJ(op, target)
	default:
		code = isa.MakeWordN()
	}

	asm.emit(Instruction{LineNo: lineno, Words: words, Code: code, LinkLabel: label})

	for _, reg := range asm.Hazard.Writes(op, regs) {
		asm.hazards.Touch(reg, asm.Latency(op))
	}

	return
}

// immediate resolves a decimal I format immediate.
func (asm *Assembler) immediate(word string) (imm uint16, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	imm, err = isa.Immediate(value)
	return
}

// relative resolves a label as an I format immediate, relative to ip.
func (asm *Assembler) relative(label string, ip int) (imm uint16, err error) {
	address, err := asm.Label.Resolve(label)
	if err != nil {
		return
	}

	offset := address - ip
	if offset > math.MaxInt16 {
		err = isa.ErrImmediateRange
		return
	}

	imm, err = isa.Immediate(offset)
	return
}

// target resolves a J format absolute target.
func (asm *Assembler) target(word string) (target uint32, err error) {
	address, err := asm.Label.Resolve(word)
	if err != nil {
		return
	}

	target, err = isa.Target(address)
	return
}

// link re-encodes every label operand against the final label addresses.
// Padding emitted after a forward reference moves its label again, so
// without linking the operand keeps the address seen when it was emitted.
func (asm *Assembler) link() (err error) {
	for n := range asm.code {
		instr := &asm.code[n]
		if len(instr.LinkLabel) == 0 {
			continue
		}

		code := instr.Code
		op, _ := code.Mnemonic()
		index := 1
		switch op.Format() {
		case isa.FORMAT_I:
			index = 3
			var imm uint16
			imm, err = asm.relative(instr.LinkLabel, instr.Ip)
			ra, rb, _ := code.DecodeI()
			code = isa.MakeWordI(op, ra, rb, imm)
		case isa.FORMAT_J:
			var target uint32
			target, err = asm.target(instr.LinkLabel)
			code = isa.MakeWordJ(op, target)
		}
		if err != nil {
			err = &ErrOperand{Index: index, Word: instr.LinkLabel, Err: err}
			err = &ErrSyntax{LineNo: instr.LineNo, Line: strings.Join(instr.Words, " "), Err: err}
			return
		}

		if asm.Verbose && code != instr.Code {
			log.Printf("%v: relinked %v at %v: %v -> %v\n", instr.LineNo, instr.LinkLabel, instr.Ip, instr.Code, code)
		}
		instr.Code = code
	}

	return
}

// pad emits a no-op while reg cools down, moving labels beyond it.
func (asm *Assembler) pad(reg isa.Register, lineno int) {
	moved := asm.Label.ShiftAfter(asm.ip)

	if asm.Verbose {
		log.Printf("%v: nop at %v, %v busy for %v, %v labels moved\n",
			lineno, asm.ip, reg, asm.hazards.Remaining(reg), moved)
	}

	asm.emit(Instruction{LineNo: lineno, Words: []string{isa.NOP.String()}, Code: isa.MakeWordN(), Padding: true})
}

// emit appends a word at the current address.
func (asm *Assembler) emit(instr Instruction) {
	instr.Ip = asm.ip
	asm.code = append(asm.code, instr)
	asm.ip++
	asm.hazards.OnEmit()
}
