package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/pipeasm/isa"
)

func TestHazardTracker(t *testing.T) {
	assert := assert.New(t)

	ht := &HazardTracker{}
	for reg := range isa.Register(isa.NUM_REGISTERS) {
		assert.Equal(0, ht.Remaining(reg))
	}

	ht.Touch(3, 2)
	ht.Touch(31, 4)
	assert.Equal(2, ht.Remaining(3))
	assert.Equal(4, ht.Remaining(31))

	ht.OnEmit()
	assert.Equal(1, ht.Remaining(3))
	assert.Equal(3, ht.Remaining(31))

	ht.OnEmit()
	ht.OnEmit()
	assert.Equal(0, ht.Remaining(3))
	assert.Equal(1, ht.Remaining(31))
	assert.Equal(0, ht.Remaining(0))

	ht.Touch(5, -3)
	assert.Equal(0, ht.Remaining(5))

	ht.Reset()
	assert.Equal(0, ht.Remaining(31))
}

func TestHazardModel(t *testing.T) {
	assert := assert.New(t)

	regs := []isa.Register{1, 2, 3}

	assert.Equal(regs, HAZARD_AS_BUILT.Reads(isa.ADD, regs))
	assert.Equal([]isa.Register{2, 3}, HAZARD_AS_BUILT.Writes(isa.ADD, regs))
	assert.Equal([]isa.Register{2}, HAZARD_AS_BUILT.Writes(isa.STW, regs[:2]))
	assert.Nil(HAZARD_AS_BUILT.Writes(isa.JMP, nil))

	assert.Equal([]isa.Register{2, 3}, HAZARD_DESTINATION.Reads(isa.ADD, regs))
	assert.Equal([]isa.Register{1}, HAZARD_DESTINATION.Writes(isa.ADD, regs))
	assert.Equal([]isa.Register{1, 2}, HAZARD_DESTINATION.Reads(isa.STW, regs[:2]))
	assert.Nil(HAZARD_DESTINATION.Writes(isa.BEQ, regs[:2]))
	assert.Nil(HAZARD_DESTINATION.Writes(isa.NOP, nil))

	model, err := ParseHazardModel("destination")
	assert.NoError(err)
	assert.Equal(HAZARD_DESTINATION, model)

	model, err = ParseHazardModel("as-built")
	assert.NoError(err)
	assert.Equal(HAZARD_AS_BUILT, model)

	_, err = ParseHazardModel("optimistic")
	assert.ErrorIs(err, ErrHazardModelInvalid)
}
