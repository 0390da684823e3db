package assembler

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/pipeasm/isa"
)

// Instruction is a single emitted word with its source location.
type Instruction struct {
	LineNo    int      // Source line that produced the word.
	Ip        int      // Address of the word.
	Words     []string // Expanded source words.
	Code      isa.Word // Encoded word.
	Padding   bool     // Inserted to wait out a register hazard.
	LinkLabel string   // Label operand, if any.
}

// Program is an assembled instruction stream.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int // Final label addresses.
}

// Debug returns the instruction at an address, or nil.
func (prog *Program) Debug(ip int) *Instruction {
	if ip < 0 || ip >= len(prog.Instructions) {
		return nil
	}

	instr := &prog.Instructions[ip]
	if instr.Ip != ip {
		return nil
	}

	return instr
}

// Binary returns the raw instruction words.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint32(code))
	}

	return
}

// Codes iterates the address and word of every instruction.
func (prog *Program) Codes() iter.Seq2[int, isa.Word] {
	return func(yield func(ip int, code isa.Word) bool) {
		for _, instr := range prog.Instructions {
			if !yield(instr.Ip, instr.Code) {
				return
			}
		}
	}
}

// Padding returns the number of no-ops inserted for register hazards.
func (prog *Program) Padding() (count int) {
	for _, instr := range prog.Instructions {
		if instr.Padding {
			count++
		}
	}

	return
}

// WriteTo writes the '<address> <binary>' listing of the program.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	return prog.WriteListing(w, false)
}

// WriteListing writes the '<address> <binary>' listing of the program,
// optionally followed by a disassembly comment on every line.
func (prog *Program) WriteListing(w io.Writer, annotate bool) (n int64, err error) {
	bw := bufio.NewWriter(w)

	for _, instr := range prog.Instructions {
		var count int
		if annotate {
			note := instr.Code.String()
			if instr.Padding {
				note += " (padding)"
			}
			count, err = fmt.Fprintf(bw, "%d %v ; %v\n", instr.Ip, instr.Code.Binary(), note)
		} else {
			count, err = fmt.Fprintf(bw, "%d %v\n", instr.Ip, instr.Code.Binary())
		}
		n += int64(count)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// ReadListing parses a '<address> <binary>' listing back into a Program.
func ReadListing(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{Labels: map[string]int{}}

	for scanner.Scan() {
		lineno += 1
		line = stripComment(scanner.Text())
		if len(line) == 0 {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 || len(fields[1]) != isa.WORD_BITS {
			err = ErrListingSyntax
			return
		}

		var ip int
		ip, err = strconv.Atoi(fields[0])
		if err != nil {
			err = ErrListingSyntax
			return
		}
		if ip != len(prog.Instructions) {
			err = ErrListingAddress
			return
		}

		var bits uint64
		bits, err = strconv.ParseUint(fields[1], 2, isa.WORD_BITS)
		if err != nil {
			err = ErrListingSyntax
			return
		}

		code := isa.Word(bits)
		prog.Instructions = append(prog.Instructions, Instruction{
			LineNo: lineno,
			Ip:     ip,
			Words:  strings.Fields(code.String()),
			Code:   code,
		})
	}

	line = ""
	err = scanner.Err()
	return
}
