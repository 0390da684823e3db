package assembler

import (
	"iter"
	"maps"

	"github.com/ezrec/pipeasm/internal"
)

// LabelTable maps jump labels to instruction addresses.
type LabelTable struct {
	address map[string]int
}

// Bind sets the address of a label, replacing any previous binding.
func (lt *LabelTable) Bind(name string, address int) {
	if lt.address == nil {
		lt.address = make(map[string]int, 16)
	}
	lt.address[name] = address
}

// ShiftAfter moves every label bound beyond threshold up by one address,
// returning the number of labels moved.
func (lt *LabelTable) ShiftAfter(threshold int) (moved int) {
	// TODO: a Fenwick tree over addresses would make this O(log n) per shift.
	for name, address := range lt.address {
		if address > threshold {
			lt.address[name] = address + 1
			moved++
		}
	}

	return
}

// Resolve returns the current address of a label.
func (lt *LabelTable) Resolve(name string) (address int, err error) {
	address, ok := lt.address[name]
	if !ok {
		err = ErrUnknownLabel(name)
		return
	}

	return
}

// Has reports whether a label is bound.
func (lt *LabelTable) Has(name string) bool {
	_, ok := lt.address[name]
	return ok
}

// Len is the number of bound labels.
func (lt *LabelTable) Len() int {
	return len(lt.address)
}

// All iterates the labels in address order.
func (lt *LabelTable) All() iter.Seq2[string, int] {
	return internal.SortedByValue(lt.address)
}

// Map returns a copy of the label bindings.
func (lt *LabelTable) Map() map[string]int {
	if lt.address == nil {
		return map[string]int{}
	}
	return maps.Clone(lt.address)
}

// Reset removes all labels.
func (lt *LabelTable) Reset() {
	clear(lt.address)
}
