package symmetry

import (
	"fmt"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Symmetry func(int, int) (int, int)

func compose(ss ...Symmetry) Symmetry {
	return func(x, y int) (int, int) {
		for i := range ss {
			s := ss[len(ss)-i-1]
			x, y = s(x, y)
		}
		return x, y
	}
}

func symmetries() []Symmetry {
	flip := func(i int) int {
		return ttt.Size - 1 - i
	}

	identity := func(x, y int) (int, int) {
		return x, y
	}

	flipX := func(x, y int) (int, int) {
		return flip(x), y
	}

	flipY := func(x, y int) (int, int) {
		return x, flip(y)
	}
	flipDiag1 := func(x, y int) (int, int) {
		return y, x
	}
	flipDiag2 := func(x, y int) (int, int) {
		return flip(y), flip(x)
	}

	rotate2 := func(x, y int) (int, int) {
		return flip(x), flip(y)
	}
	rotCW := func(x, y int) (int, int) {
		return y, flip(x)
	}
	rotCCW := func(x, y int) (int, int) {
		return flip(y), x
	}

	return []Symmetry{
		identity,
		flipX,
		flipY,
		flipDiag1,
		flipDiag2,
		rotate2,
		rotCW,
		rotCCW,
	}
}

func TransformMove(s Symmetry, m int) int {
	x, y := s(m%ttt.Size, m/ttt.Size)
	return y*ttt.Size + x
}

func Transform(s Symmetry, b ttt.Board) ttt.Board {
	var out ttt.Board
	for i, c := range b {
		out[TransformMove(s, i)] = c
	}
	return out
}

// CanonicalBoard returns the image of b with the smallest key, and the
// symmetry that produces it.
func CanonicalBoard(b ttt.Board) (ttt.Board, Symmetry) {
	syms := symmetries()
	best, bs := b, syms[0]
	for _, s := range syms[1:] {
		if t := Transform(s, b); t.Key() < best.Key() {
			best, bs = t, s
		}
	}
	return best, bs
}

type state struct {
	p     *ttt.Position
	s     Symmetry
	moves []int
}

// Canonical rewrites a game, x moving first, into the orientation
// that prefers the lowest cell index at every ply.
func Canonical(ms []int) ([]int, error) {
	p := ttt.New(ttt.X)
	syms := symmetries()
	boards := make([]*state, len(syms))
	for i := range boards {
		boards[i] = &state{
			s: syms[i],
			p: p,
		}
	}

	var rots []Symmetry
	tfn := syms[0]

	for ply, m := range ms {
		var e error
		k := boards[0].p.Board().Key()
		m := TransformMove(tfn, m)
		best := m
		var rot Symmetry
		for i, st := range boards {
			if i == 0 {
				continue
			}
			if st.p.Board().Key() == k {
				if rm := TransformMove(st.s, m); rm < best {
					best = rm
					rot = st.s
				}
			}
		}

		if rot != nil {
			rots = append([]Symmetry{rot}, rots...)
			tfn = compose(rots...)
			m = best
		}
		for i, st := range boards {
			rm := TransformMove(st.s, m)
			st.p, e = st.p.Move(rm)
			if e != nil {
				return nil, fmt.Errorf("canonical: move %d: rot %d: %s: %w",
					ply, i, notation.FormatMove(rm), e)
			}
			st.moves = append(st.moves, rm)
		}
	}

	return boards[0].moves, nil
}

// Openings returns every position reachable in exactly plies moves
// from the empty board, x first, one per symmetry class. Finished
// games are dropped.
func Openings(plies int) []*ttt.Position {
	level := []*ttt.Position{ttt.New(ttt.X)}
	for i := 0; i < plies; i++ {
		seen := make(map[ttt.Key]struct{})
		var next []*ttt.Position
		for _, p := range level {
			for _, m := range p.LegalMoves() {
				child, e := p.Move(m)
				if e != nil {
					panic(e)
				}
				if over, _ := child.GameOver(); over {
					continue
				}
				cb, _ := CanonicalBoard(child.Board())
				if _, ok := seen[cb.Key()]; ok {
					continue
				}
				seen[cb.Key()] = struct{}{}
				next = append(next, child)
			}
		}
		level = next
	}
	return level
}
