package machine

import (
	"fmt"
	"sort"
	"strings"
)

// Serialize renders the table in the five-field line format, preceded by
// its model tag header. Rows are sorted by (state, symbol) so equal tables
// serialize byte-for-byte identically.
func Serialize(m *Machine) string {
	ts := m.Transitions()
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].From != ts[j].From {
			return ts[i].From < ts[j].From
		}
		return ts[i].Read < ts[j].Read
	})

	var sb strings.Builder
	sb.WriteString(m.Model().Tag())
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "; %s model, %d transitions\n", m.Model().Name(), len(ts))
	for _, t := range ts {
		fmt.Fprintf(&sb, "%d %s %s %s %d\n", t.From, t.Read, t.Write, t.Dir, t.To)
	}
	return sb.String()
}
