package assembler

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/pipeasm/isa"
)

// randomProgram builds a program that reuses a few registers heavily, with
// forward and backward branches. It returns the source line of every label.
func randomProgram(rng *rand.Rand, lines int) (program []string, labels map[string]int) {
	labels = map[string]int{}
	var names []string
	for n := range lines / 8 {
		names = append(names, fmt.Sprintf("L%d", n))
	}

	reg := func() string {
		return fmt.Sprintf("R%d", rng.Intn(4))
	}

	next := 0
	for len(program) < lines {
		if next < len(names) && rng.Intn(8) == 0 {
			program = append(program, names[next])
			labels[names[next]] = len(program)
			next++
			continue
		}

		var line string
		switch rng.Intn(9) {
		case 0:
			line = fmt.Sprintf("add %v %v %v", reg(), reg(), reg())
		case 1:
			line = fmt.Sprintf("sub %v, %v, %v", reg(), reg(), reg())
		case 2:
			line = fmt.Sprintf("ldi %v %v %d", reg(), reg(), rng.Intn(200)-100)
		case 3:
			line = fmt.Sprintf("mov %v %v %d", reg(), reg(), rng.Intn(200))
		case 4:
			line = fmt.Sprintf("stw %v %v 0", reg(), reg())
		case 5:
			line = fmt.Sprintf("beq %v %v %v", reg(), reg(), names[rng.Intn(len(names))])
		case 6:
			line = fmt.Sprintf("bneq %v %v %v", reg(), reg(), names[rng.Intn(len(names))])
		case 7:
			line = fmt.Sprintf("jmp %v", names[rng.Intn(len(names))])
		case 8:
			if rng.Intn(2) == 0 {
				line = "nop"
			}
		}
		program = append(program, line)
	}

	for ; next < len(names); next++ {
		program = append(program, names[next])
		labels[names[next]] = len(program)
	}

	return
}

// checkHazards verifies that every register read follows every earlier write
// of that register by at least the write latency.
func checkHazards(t *testing.T, prog *Program, model HazardModel) {
	assert := assert.New(t)

	for b, reader := range prog.Instructions {
		if reader.Padding {
			continue
		}
		op, _ := reader.Code.Mnemonic()
		reads := model.Reads(op, reader.Code.Registers())

		for a, writer := range prog.Instructions[:b] {
			if writer.Padding {
				continue
			}
			wop, _ := writer.Code.Mnemonic()
			for _, reg := range model.Writes(wop, writer.Code.Registers()) {
				if slices.Contains(reads, reg) {
					assert.GreaterOrEqual(b-a-1, wop.Latency(),
						"%v at %d reads %v written at %d", reader.Code, b, reg, a)
				}
			}
		}
	}
}

// emittedAddress returns the address a label had when the word at ip was
// emitted: padding placed after ip and before the label moved it since.
func emittedAddress(prog *Program, ip int, address int) int {
	for _, instr := range prog.Instructions[ip+1 : min(address, len(prog.Instructions))] {
		if instr.Padding {
			address--
		}
	}
	return address
}

// checkTargets verifies branch offsets, jump targets and label placement.
func checkTargets(t *testing.T, prog *Program, labels map[string]int, linked bool) {
	assert := assert.New(t)

	labelAt := func(instr Instruction, name string) int {
		address := prog.Labels[name]
		if !linked && address > instr.Ip {
			address = emittedAddress(prog, instr.Ip, address)
		}
		return address
	}

	for _, instr := range prog.Instructions {
		op, _ := instr.Code.Mnemonic()
		switch op {
		case isa.BEQ, isa.BNEQ:
			_, _, imm := instr.Code.DecodeI()
			assert.Equal(labelAt(instr, instr.Words[3])-instr.Ip, int(imm))
		case isa.JMP:
			assert.Equal(uint32(labelAt(instr, instr.Words[1])), instr.Code.DecodeJ())
		}
	}

	for name, lineno := range labels {
		// A label addresses the first word produced after its line.
		expected := len(prog.Instructions)
		for _, instr := range prog.Instructions {
			if instr.LineNo > lineno {
				expected = instr.Ip
				break
			}
		}
		assert.Equal(expected, prog.Labels[name], name)
	}
}

func TestAssemblerHazardSafety(t *testing.T) {
	for _, model := range []HazardModel{HAZARD_AS_BUILT, HAZARD_DESTINATION} {
		for _, linked := range []bool{false, true} {
			for seed := range 16 {
				rng := rand.New(rand.NewSource(int64(seed)))
				program, labels := randomProgram(rng, 160)

				asm := &Assembler{Hazard: model, Linked: linked}
				prog, err := parseProgram(asm, program)
				if err != nil {
					t.Fatalf("%v linked %v seed %d: %v", model, linked, seed, err)
				}

				for n, instr := range prog.Instructions {
					assert.Equal(t, n, instr.Ip)
				}

				checkHazards(t, prog, model)
				checkTargets(t, prog, labels, linked)
			}
		}
	}
}
