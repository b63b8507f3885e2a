package convert

import (
	"sort"

	"github.com/tapetools/tapeconv/core/errors"
	"github.com/tapetools/tapeconv/core/machine"
)

// codePool is the candidate characters handed out for fresh symbols, in
// assignment order. It excludes the blank, the comment character ";", the
// wildcard "*" some table dialects reserve, and anything unprintable, so
// every minted symbol survives the five-field line format.
const codePool = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
	"#$%&@!?^~+=<>()[]{}|/\\.,:'\"`-"

// pickMarker returns the first pool character not already used by the
// table, for planting boundary or fold markers.
func pickMarker(used map[machine.Symbol]bool) (machine.Symbol, error) {
	for _, r := range codePool {
		if !used[machine.Symbol(r)] {
			return machine.Symbol(r), nil
		}
	}
	return 0, errors.NewAlphabet(len(used)+1, len([]rune(codePool)))
}

// pairCoder maps (high-track, low-track) symbol pairs onto single
// characters so the folded tape stays inside the one-character-symbol
// format. A pair with a blank low slot encodes as its high symbol
// unchanged, which makes the untouched input region self-encoding.
type pairCoder struct {
	marker machine.Symbol
	enc    map[[2]machine.Symbol]machine.Symbol
	dec    map[machine.Symbol][2]machine.Symbol
}

// newPairCoder assigns codes for every pair over the given alphabet plus
// the fold marker. Assignment iterates the sorted alphabet so equal tables
// always produce equal encodings.
func newPairCoder(alphabet []machine.Symbol) (*pairCoder, error) {
	used := make(map[machine.Symbol]bool, len(alphabet))
	for _, s := range alphabet {
		used[s] = true
	}
	marker, err := pickMarker(used)
	if err != nil {
		return nil, err
	}
	used[marker] = true

	// Low slots: every non-blank symbol plus the marker. Blank low slots
	// are the identity encoding and need no code.
	lows := []machine.Symbol{marker}
	for _, s := range alphabet {
		if s != machine.Blank {
			lows = append(lows, s)
		}
	}
	sort.Slice(lows, func(i, j int) bool { return lows[i] < lows[j] })

	var pool []machine.Symbol
	for _, r := range codePool {
		if !used[machine.Symbol(r)] {
			pool = append(pool, machine.Symbol(r))
		}
	}
	need := len(alphabet) * len(lows)
	if need > len(pool) {
		return nil, errors.NewAlphabet(need, len(pool))
	}

	c := &pairCoder{
		marker: marker,
		enc:    make(map[[2]machine.Symbol]machine.Symbol, need),
		dec:    make(map[machine.Symbol][2]machine.Symbol, need),
	}
	next := 0
	for _, high := range alphabet {
		for _, low := range lows {
			code := pool[next]
			next++
			c.enc[[2]machine.Symbol{high, low}] = code
			c.dec[code] = [2]machine.Symbol{high, low}
		}
	}
	return c, nil
}

// encode returns the single-character code for a (high, low) pair.
func (c *pairCoder) encode(high, low machine.Symbol) machine.Symbol {
	if low == machine.Blank {
		return high
	}
	return c.enc[[2]machine.Symbol{high, low}]
}

// decode splits a code back into its (high, low) pair. Plain symbols
// decode as a blank low slot.
func (c *pairCoder) decode(code machine.Symbol) (high, low machine.Symbol) {
	if pair, ok := c.dec[code]; ok {
		return pair[0], pair[1]
	}
	return code, machine.Blank
}
