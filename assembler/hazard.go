package assembler

import (
	"github.com/ezrec/pipeasm/isa"
)

// HazardModel selects which operand registers are read and written.
type HazardModel int

//go:generate go tool stringer -linecomment -type=HazardModel
const (
	HAZARD_AS_BUILT    = HazardModel(0) // as-built
	HAZARD_DESTINATION = HazardModel(1) // destination
)

// ParseHazardModel converts a model name to its HazardModel.
func ParseHazardModel(name string) (model HazardModel, err error) {
	for _, model = range []HazardModel{HAZARD_AS_BUILT, HAZARD_DESTINATION} {
		if model.String() == name {
			return
		}
	}

	model = HAZARD_AS_BUILT
	err = ErrHazardModelInvalid
	return
}

// Reads returns the operand registers that must have cooled down before the
// instruction issues.
//
// The as-built model checks every register operand. The destination model
// skips the destination of mnemonics that write one.
func (model HazardModel) Reads(op isa.Mnemonic, regs []isa.Register) []isa.Register {
	if model == HAZARD_DESTINATION && op.Writes() && len(regs) > 0 {
		return regs[1:]
	}

	return regs
}

// Writes returns the operand registers that start a cooldown once the
// instruction is emitted.
//
// The as-built model cools every register operand after the first, source
// operands included. The destination model cools only the destination.
func (model HazardModel) Writes(op isa.Mnemonic, regs []isa.Register) []isa.Register {
	if model == HAZARD_DESTINATION {
		if op.Writes() && len(regs) > 0 {
			return regs[:1]
		}
		return nil
	}

	if len(regs) > 1 {
		return regs[1:]
	}

	return nil
}

// HazardTracker counts, per register, the cycles left before a written value
// is readable.
type HazardTracker struct {
	cooldown [isa.NUM_REGISTERS]int
}

// Remaining returns the cycles left before reg is readable.
func (ht *HazardTracker) Remaining(reg isa.Register) int {
	return ht.cooldown[reg]
}

// OnEmit advances the pipeline by one word.
func (ht *HazardTracker) OnEmit() {
	for n, cycles := range ht.cooldown {
		if cycles > 0 {
			ht.cooldown[n] = cycles - 1
		}
	}
}

// Touch marks reg as written, readable after latency more words.
func (ht *HazardTracker) Touch(reg isa.Register, latency int) {
	ht.cooldown[reg] = max(latency, 0)
}

// Reset clears all cooldowns.
func (ht *HazardTracker) Reset() {
	clear(ht.cooldown[:])
}
