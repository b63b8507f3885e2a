// Package machine holds the in-memory representation of a Turing machine
// transition table: a deterministic partial mapping from (state, symbol read)
// to (symbol written, head direction, next state), tagged with the tape model
// it is interpreted under.
package machine

import (
	"sort"
	"strconv"

	"github.com/tapetools/tapeconv/core/errors"
)

// Blank is the distinguished blank tape symbol.
const Blank Symbol = '_'

// InitialState is the start state of every machine. This is a global
// convention of the table format, not configurable per file.
const InitialState State = 0

// State is a non-negative state identifier.
type State int

// Symbol is a single tape character.
type Symbol rune

// String returns the symbol as written in the table format.
func (s Symbol) String() string {
	return string(rune(s))
}

// Direction is the head movement of a transition.
type Direction int

const (
	// Left moves the head one cell to the left.
	Left Direction = iota
	// Right moves the head one cell to the right.
	Right
)

// String returns the direction token as written in the table format.
func (d Direction) String() string {
	switch d {
	case Left:
		return "l"
	case Right:
		return "r"
	default:
		return strconv.Itoa(int(d))
	}
}

// ParseDirection parses a direction token.
func ParseDirection(tok string) (Direction, error) {
	switch tok {
	case "l":
		return Left, nil
	case "r":
		return Right, nil
	default:
		return 0, errors.NewDirection(tok)
	}
}

// Model identifies the tape formalism a table is interpreted under.
type Model int

const (
	// Infinite is the two-way-unbounded tape model.
	Infinite Model = iota
	// Sipser is the one-way-unbounded tape model with a clamped left boundary.
	Sipser
)

// Tag returns the header marker for the model.
func (m Model) Tag() string {
	if m == Infinite {
		return ";I"
	}
	return ";S"
}

// Name returns the human-readable model name.
func (m Model) Name() string {
	if m == Infinite {
		return "Infinite"
	}
	return "Sipser"
}

// Other returns the opposite tape model.
func (m Model) Other() Model {
	if m == Infinite {
		return Sipser
	}
	return Infinite
}

// ParseModelTag parses a header marker line.
func ParseModelTag(tag string) (Model, error) {
	switch tag {
	case ";I":
		return Infinite, nil
	case ";S":
		return Sipser, nil
	default:
		return 0, errors.NewModelTag(tag)
	}
}

// Transition is a single rule: in state From reading Read, write Write,
// move Dir, and enter state To.
type Transition struct {
	From  State
	Read  Symbol
	Write Symbol
	Dir   Direction
	To    State
}

type key struct {
	from State
	read Symbol
}

// Machine is a validated, immutable transition table plus its model tag.
type Machine struct {
	model       Model
	transitions []Transition
	index       map[key]int
}

// New validates the transition set and constructs a Machine.
// It rejects negative states, direction values outside the enum, and
// duplicate (state, symbol) pairs.
func New(model Model, transitions []Transition) (*Machine, error) {
	index := make(map[key]int, len(transitions))
	for i, t := range transitions {
		if t.Dir != Left && t.Dir != Right {
			return nil, errors.NewDirection(t.Dir.String())
		}
		if t.From < 0 || t.To < 0 {
			return nil, errors.NewTransition(0, "", "state must be a non-negative integer")
		}
		k := key{t.From, t.Read}
		if _, dup := index[k]; dup {
			return nil, errors.NewDeterminism(int(t.From), t.Read.String())
		}
		index[k] = i
	}
	ts := make([]Transition, len(transitions))
	copy(ts, transitions)
	return &Machine{model: model, transitions: ts, index: index}, nil
}

// Model returns the tape model the table is interpreted under.
func (m *Machine) Model() Model {
	return m.model
}

// Len returns the number of transitions.
func (m *Machine) Len() int {
	return len(m.transitions)
}

// Transitions returns a copy of the transition set.
func (m *Machine) Transitions() []Transition {
	ts := make([]Transition, len(m.transitions))
	copy(ts, m.transitions)
	return ts
}

// Lookup returns the transition for (state, symbol), if any.
// A missing pair means the machine halts in that configuration.
func (m *Machine) Lookup(from State, read Symbol) (Transition, bool) {
	i, ok := m.index[key{from, read}]
	if !ok {
		return Transition{}, false
	}
	return m.transitions[i], true
}

// States returns every state mentioned in the table, sorted.
func (m *Machine) States() []State {
	seen := map[State]bool{}
	for _, t := range m.transitions {
		seen[t.From] = true
		seen[t.To] = true
	}
	out := make([]State, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MaxState returns the largest state identifier in the table, or -1 for an
// empty table.
func (m *Machine) MaxState() State {
	max := State(-1)
	for _, t := range m.transitions {
		if t.From > max {
			max = t.From
		}
		if t.To > max {
			max = t.To
		}
	}
	return max
}

// Alphabet returns every symbol read or written by the table plus the
// blank, sorted.
func (m *Machine) Alphabet() []Symbol {
	seen := map[Symbol]bool{Blank: true}
	for _, t := range m.transitions {
		seen[t.Read] = true
		seen[t.Write] = true
	}
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
