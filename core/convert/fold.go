package convert

import (
	"github.com/tapetools/tapeconv/core/machine"
)

// Fold construction: simulate a two-way-infinite tape on a one-way tape by
// folding the tape at the initial head position. One-way cell i carries the
// pair (cell +i, cell -i); cell 0 carries the fold marker in its low slot.
// Each original state q splits into a high-track state up(q) and a
// low-track state down(q); crossing the fold switches tracks instead of
// moving the physical head further.

// foldStart is the start state of the folded machine. Its only job is to
// plant the fold marker under cell 0 while performing the first simulated
// step.
const foldStart machine.State = 0

func foldUp(q machine.State) machine.State   { return 2*q + 1 }
func foldDown(q machine.State) machine.State { return 2*q + 2 }

// foldCross resolves a move taken at cell 0. A right move continues on the
// high track; a left move lands on simulated cell -1, which lives at
// physical cell 1 on the low track. Either way the physical head moves
// right.
func foldCross(d machine.Direction, to machine.State) machine.State {
	if d == machine.Right {
		return foldUp(to)
	}
	return foldDown(to)
}

func flip(d machine.Direction) machine.Direction {
	if d == machine.Left {
		return machine.Right
	}
	return machine.Left
}

// infiniteToSipser folds an Infinite-model table onto a one-way tape.
func infiniteToSipser(m *machine.Machine) (*machine.Machine, error) {
	alphabet := m.Alphabet()
	coder, err := newPairCoder(alphabet)
	if err != nil {
		return nil, err
	}

	var out []machine.Transition
	for _, t := range sortedTransitions(m) {
		// Start: the head is on cell 0 and the marker is not planted yet,
		// so the cell reads as a plain symbol.
		if t.From == machine.InitialState {
			out = append(out, machine.Transition{
				From:  foldStart,
				Read:  t.Read,
				Write: coder.encode(t.Write, coder.marker),
				Dir:   machine.Right,
				To:    foldCross(t.Dir, t.To),
			})
		}

		// High track, cells 1..n: the low slot rides along untouched.
		for _, low := range alphabet {
			if low == machine.Blank {
				continue
			}
			out = append(out, machine.Transition{
				From:  foldUp(t.From),
				Read:  coder.encode(t.Read, low),
				Write: coder.encode(t.Write, low),
				Dir:   t.Dir,
				To:    foldUp(t.To),
			})
		}
		// High track, blank low slot: the identity encoding, which also
		// covers the untouched input region.
		out = append(out, machine.Transition{
			From:  foldUp(t.From),
			Read:  t.Read,
			Write: t.Write,
			Dir:   t.Dir,
			To:    foldUp(t.To),
		})
		// High track at cell 0: the marker is visible, so a left move is
		// known to cross the fold.
		out = append(out, machine.Transition{
			From:  foldUp(t.From),
			Read:  coder.encode(t.Read, coder.marker),
			Write: coder.encode(t.Write, coder.marker),
			Dir:   machine.Right,
			To:    foldCross(t.Dir, t.To),
		})

		// Low track: the high slot rides along; physical motion mirrors
		// the simulated motion.
		for _, high := range alphabet {
			out = append(out, machine.Transition{
				From:  foldDown(t.From),
				Read:  coder.encode(high, t.Read),
				Write: coder.encode(high, t.Write),
				Dir:   flip(t.Dir),
				To:    foldDown(t.To),
			})
		}
		// Low track arriving at cell 0: the marker means the simulated
		// head is back at the origin, so act exactly as the high track
		// does there.
		out = append(out, machine.Transition{
			From:  foldDown(t.From),
			Read:  coder.encode(t.Read, coder.marker),
			Write: coder.encode(t.Write, coder.marker),
			Dir:   machine.Right,
			To:    foldCross(t.Dir, t.To),
		})
	}

	return machine.New(machine.Sipser, out)
}
