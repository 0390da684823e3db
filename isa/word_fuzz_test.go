package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzWord(f *testing.F) {
	for _, op := range Mnemonics() {
		f.Add(uint8(op), uint8(0), uint8(31), uint8(17), uint16(0), uint32(0))
		f.Add(uint8(op), uint8(31), uint8(0), uint8(1), uint16(0xffff), uint32(TARGET_MAX))
	}

	f.Fuzz(func(t *testing.T, mnem uint8, ra, rb, rc uint8, imm uint16, target uint32) {
		assert := assert.New(t)

		op := Mnemonic(int(mnem) % len(Mnemonics()))
		rd := Register(ra % NUM_REGISTERS)
		rs := Register(rb % NUM_REGISTERS)
		rt := Register(rc % NUM_REGISTERS)
		target &= TARGET_MAX

		var word Word
		switch op.Format() {
		case FORMAT_R:
			word = MakeWordR(op, rd, rs, rt)
			drd, drs, drt := word.DecodeR()
			assert.Equal(rd, drd)
			assert.Equal(rs, drs)
			assert.Equal(rt, drt)
			assert.Equal(uint32(0), uint32(word)&0x7ff)
		case FORMAT_I:
			word = MakeWordI(op, rd, rs, imm)
			dra, drb, dimm := word.DecodeI()
			assert.Equal(rd, dra)
			assert.Equal(rs, drb)
			assert.Equal(imm, uint16(dimm))
		case FORMAT_J:
			word = MakeWordJ(op, target)
			assert.Equal(target, word.DecodeJ())
		case FORMAT_N:
			word = MakeWordN()
		}

		decoded, ok := word.Mnemonic()
		assert.True(ok)
		assert.Equal(op, decoded)
		assert.Equal(op.Opcode(), word.Opcode())
		assert.Len(word.Binary(), WORD_BITS)
	})
}
