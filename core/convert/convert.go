// Package convert transforms a transition table between the two tape
// models. Conversion is a pure function over the data model: it never
// touches files and always returns a brand-new table, leaving its input
// untouched.
//
// Infinite -> Sipser uses the fold construction (fold.go); Sipser ->
// Infinite uses the boundary-clamp construction (clamp.go). Both preserve
// observable behavior: the converted machine halts on exactly the inputs
// the original halts on, though not in the same number of steps.
package convert

import (
	"sort"

	"github.com/tapetools/tapeconv/core/errors"
	"github.com/tapetools/tapeconv/core/machine"
)

// Convert returns a behaviorally equivalent machine under the other tape
// model. The input table is revalidated first: everything downstream
// depends on the converter's output, so it does not trust that the parser
// ran.
func Convert(m *machine.Machine) (*machine.Machine, error) {
	if err := revalidate(m); err != nil {
		return nil, err
	}
	if m.Model() == machine.Infinite {
		return infiniteToSipser(m)
	}
	return sipserToInfinite(m)
}

// revalidate re-checks the invariants the constructions rely on: a
// two-variant direction on every transition and at most one transition per
// (state, symbol) pair.
func revalidate(m *machine.Machine) error {
	type key struct {
		from machine.State
		read machine.Symbol
	}
	seen := map[key]bool{}
	for _, t := range m.Transitions() {
		if t.Dir != machine.Left && t.Dir != machine.Right {
			return errors.NewDirection(t.Dir.String())
		}
		k := key{t.From, t.Read}
		if seen[k] {
			return errors.NewDeterminism(int(t.From), t.Read.String())
		}
		seen[k] = true
	}
	return nil
}

// sortedTransitions returns the table's transitions ordered by
// (state, symbol) so both constructions emit rows in a reproducible order.
func sortedTransitions(m *machine.Machine) []machine.Transition {
	ts := m.Transitions()
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].From != ts[j].From {
			return ts[i].From < ts[j].From
		}
		return ts[i].Read < ts[j].Read
	})
	return ts
}
