package convert

import (
	"github.com/tapetools/tapeconv/core/machine"
)

// Test-only tape simulator. The tool itself never executes a machine; the
// tests need to, because the conversions promise behavioral equivalence
// and that is only observable by running both tables.

type simResult struct {
	halted bool
	state  machine.State
	head   int
	steps  int
	tape   map[int]machine.Symbol
}

func (r simResult) at(pos int) machine.Symbol {
	if s, ok := r.tape[pos]; ok {
		return s
	}
	return machine.Blank
}

// simulate runs m on the given input (written at positions 0..len-1) for at
// most maxSteps steps. Under the Sipser model a left move from position 0
// leaves the head in place (the clamp); under the Infinite model the head
// may go negative.
func simulate(m *machine.Machine, input string, maxSteps int) simResult {
	tape := map[int]machine.Symbol{}
	for i, r := range []rune(input) {
		tape[i] = machine.Symbol(r)
	}

	state := machine.InitialState
	head := 0
	for step := 0; step < maxSteps; step++ {
		read := machine.Blank
		if s, ok := tape[head]; ok {
			read = s
		}
		t, ok := m.Lookup(state, read)
		if !ok {
			return simResult{halted: true, state: state, head: head, steps: step, tape: tape}
		}
		tape[head] = t.Write
		switch t.Dir {
		case machine.Left:
			if m.Model() == machine.Sipser && head == 0 {
				// clamped at the left edge
			} else {
				head--
			}
		case machine.Right:
			head++
		}
		state = t.To
	}
	return simResult{halted: false, state: state, head: head, steps: maxSteps, tape: tape}
}
