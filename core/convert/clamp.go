package convert

import (
	"sort"

	"github.com/tapetools/tapeconv/core/machine"
)

// Boundary-clamp construction: a one-way-tape machine run on a two-way
// tape would fall off its former left edge, so a boundary marker is
// planted one cell left of the origin at startup. Every left-moving
// transition is redirected through a check state for its target: landing
// on the marker means the move stepped past the old edge, and the head is
// bounced back to the edge cell before the target state continues, which
// reproduces the one-way model's clamp.

// Setup states: clampStart walks one cell left of the origin without
// disturbing it; clampPlant writes the marker and returns.
const (
	clampStart machine.State = 0
	clampPlant machine.State = 1
)

// sipserToInfinite re-expresses a Sipser-model table on a two-way tape.
func sipserToInfinite(m *machine.Machine) (*machine.Machine, error) {
	alphabet := m.Alphabet()
	used := make(map[machine.Symbol]bool, len(alphabet))
	for _, s := range alphabet {
		used[s] = true
	}
	marker, err := pickMarker(used)
	if err != nil {
		return nil, err
	}

	// Original states shift up past the two setup states; check states
	// occupy the block above the shifted originals.
	n := m.MaxState() + 1
	shifted := func(q machine.State) machine.State { return q + 2 }
	check := func(q machine.State) machine.State { return q + 2 + n }
	redirect := func(d machine.Direction, to machine.State) machine.State {
		if d == machine.Left {
			return check(to)
		}
		return shifted(to)
	}

	var out []machine.Transition
	for _, a := range alphabet {
		out = append(out, machine.Transition{
			From: clampStart, Read: a, Write: a, Dir: machine.Left, To: clampPlant,
		})
	}
	// Cell -1 is untouched tape, always blank.
	out = append(out, machine.Transition{
		From: clampPlant, Read: machine.Blank, Write: marker, Dir: machine.Right,
		To: shifted(machine.InitialState),
	})

	leftTargets := map[machine.State]bool{}
	for _, t := range sortedTransitions(m) {
		if t.Dir == machine.Left {
			leftTargets[t.To] = true
		}
		out = append(out, machine.Transition{
			From:  shifted(t.From),
			Read:  t.Read,
			Write: t.Write,
			Dir:   t.Dir,
			To:    redirect(t.Dir, t.To),
		})
	}

	targets := make([]machine.State, 0, len(leftTargets))
	for q := range leftTargets {
		targets = append(targets, q)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	for _, q := range targets {
		// On the marker: the left move stepped past the old edge. Clamp by
		// moving back onto the edge cell and letting the target state run.
		out = append(out, machine.Transition{
			From: check(q), Read: marker, Write: marker, Dir: machine.Right, To: shifted(q),
		})
		// On an ordinary symbol the move was legal, so replay the target
		// state's own action for that symbol.
		for _, a := range alphabet {
			t, ok := m.Lookup(q, a)
			if !ok {
				continue
			}
			out = append(out, machine.Transition{
				From:  check(q),
				Read:  a,
				Write: t.Write,
				Dir:   t.Dir,
				To:    redirect(t.Dir, t.To),
			})
		}
	}

	return machine.New(machine.Infinite, out)
}
