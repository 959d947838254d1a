// Package analysis implements the microarchitectural analyzer: a hazard
// detector across three pipeline depths, three independent branch
// predictors, and a dual-issue superscalar pairing checker, all driven by
// the stream of core.Instruction records a core.Machine retires.
package analysis

import "github.com/sarchlab/mipssim/core"

// windowCapacity bounds how many non-NOP retired records the analyzer keeps
// around for lookback (load-use detection, superscalar pairing). A ring
// buffer suffices since only the newest few entries are ever consulted.
const windowCapacity = 10

// window is a bounded, newest-first sequence of retired non-NOP
// instructions.
type window struct {
	entries []core.Instruction
}

func newWindow() *window {
	return &window{entries: make([]core.Instruction, 0, windowCapacity)}
}

// push inserts inst at the front. NOPs are never admitted: they would
// otherwise shorten the recorded lookback distance for later instructions.
func (w *window) push(inst core.Instruction) {
	if inst.IsNOP() {
		return
	}
	w.entries = append(w.entries, core.Instruction{})
	copy(w.entries[1:], w.entries)
	w.entries[0] = inst
	if len(w.entries) > windowCapacity {
		w.entries = w.entries[:windowCapacity]
	}
}

// at returns the i-th newest entry (0 = newest) and whether it exists.
func (w *window) at(i int) (core.Instruction, bool) {
	if i < 0 || i >= len(w.entries) {
		return core.Instruction{}, false
	}
	return w.entries[i], true
}

// len reports how many entries are currently held.
func (w *window) len() int {
	return len(w.entries)
}
