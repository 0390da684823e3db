package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelTable(t *testing.T) {
	assert := assert.New(t)

	lt := &LabelTable{}
	assert.Equal(0, lt.Len())

	_, err := lt.Resolve("START")
	assert.Equal(ErrUnknownLabel("START"), err)

	assert.False(lt.Has("START"))
	lt.Bind("START", 0)
	assert.True(lt.Has("START"))
	lt.Bind("LOOP", 3)
	lt.Bind("END", 7)

	address, err := lt.Resolve("LOOP")
	assert.NoError(err)
	assert.Equal(3, address)

	lt.Bind("LOOP", 4)
	address, _ = lt.Resolve("LOOP")
	assert.Equal(4, address)
	assert.Equal(3, lt.Len())

	var names []string
	for name := range lt.All() {
		names = append(names, name)
	}
	assert.Equal([]string{"START", "LOOP", "END"}, names)

	lt.Reset()
	assert.Equal(0, lt.Len())
	assert.False(lt.Has("START"))
	assert.Equal(map[string]int{}, lt.Map())
}

func TestLabelTableShiftAfter(t *testing.T) {
	assert := assert.New(t)

	lt := &LabelTable{}
	lt.Bind("A", 0)
	lt.Bind("B", 2)
	lt.Bind("C", 3)
	lt.Bind("D", 9)

	moved := lt.ShiftAfter(2)
	assert.Equal(2, moved)
	assert.Equal(map[string]int{"A": 0, "B": 2, "C": 4, "D": 10}, lt.Map())

	moved = lt.ShiftAfter(10)
	assert.Equal(0, moved)

	moved = lt.ShiftAfter(-1)
	assert.Equal(4, moved)
	assert.Equal(map[string]int{"A": 1, "B": 3, "C": 5, "D": 11}, lt.Map())

	empty := &LabelTable{}
	assert.Equal(0, empty.ShiftAfter(0))
}
