package ai

import "github.com/nelhage/tictactician/ttt"

type boundType byte

const (
	exactBound boundType = iota
	lowerBound
	upperBound
)

type tableEntry struct {
	value int
	bound boundType
}

// table maps exact boards to search values. It lives for a single
// top-level search.
type table struct {
	disabled bool
	entries  map[ttt.Key]tableEntry
}

func newTable(disabled bool) *table {
	return &table{
		disabled: disabled,
		entries:  make(map[ttt.Key]tableEntry),
	}
}

func (t *table) get(k ttt.Key) (tableEntry, bool) {
	if t.disabled {
		return tableEntry{}, false
	}
	te, ok := t.entries[k]
	return te, ok
}

func (t *table) put(k ttt.Key, te tableEntry) {
	if t.disabled {
		return
	}
	t.entries[k] = te
}

func (t *table) clear() {
	for k := range t.entries {
		delete(t.entries, k)
	}
}

func (t *table) len() int {
	return len(t.entries)
}

// suffices reports whether te settles a node searched with window
// (α, β) without recursing. A bare stored value would not be neutral
// under fail-soft alpha-beta, since a cut-off node only bounds its value.
func (te *tableEntry) suffices(α, β int) bool {
	switch te.bound {
	case exactBound:
		return true
	case lowerBound:
		return te.value >= β
	case upperBound:
		return te.value <= α
	}
	return false
}
