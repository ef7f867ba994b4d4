package ai

import (
	"testing"

	"github.com/nelhage/tictactician/ttt"
)

func TestTable(t *testing.T) {
	tbl := newTable(false)
	k := board("x../.o./...").Key()
	if _, ok := tbl.get(k); ok {
		t.Fatal("hit in empty table")
	}
	tbl.put(k, tableEntry{value: 3, bound: exactBound})
	te, ok := tbl.get(k)
	if !ok || te.value != 3 {
		t.Fatalf("get=%+v,%v", te, ok)
	}
	if tbl.len() != 1 {
		t.Errorf("len=%d", tbl.len())
	}
	if _, ok := tbl.get(ttt.Board{}.Key()); ok {
		t.Error("hit on a different board")
	}
	tbl.clear()
	if _, ok := tbl.get(k); ok || tbl.len() != 0 {
		t.Error("entry survived clear")
	}

	off := newTable(true)
	off.put(k, tableEntry{value: 3})
	if _, ok := off.get(k); ok {
		t.Error("disabled table returned an entry")
	}
}

func TestSuffices(t *testing.T) {
	cases := []struct {
		te   tableEntry
		α, β int
		want bool
	}{
		{tableEntry{value: 0, bound: exactBound}, -1, 1, true},
		{tableEntry{value: 5, bound: lowerBound}, -1, 3, true},
		{tableEntry{value: 2, bound: lowerBound}, -1, 3, false},
		{tableEntry{value: -5, bound: upperBound}, -1, 3, true},
		{tableEntry{value: 0, bound: upperBound}, -1, 3, false},
	}
	for i, tc := range cases {
		if got := tc.te.suffices(tc.α, tc.β); got != tc.want {
			t.Errorf("[%d] suffices(%d,%d)=%v", i, tc.α, tc.β, got)
		}
	}
}
