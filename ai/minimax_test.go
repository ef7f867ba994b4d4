package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

func TestEmptyBoardPicksCenter(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	a, e := ai.Analyze(ttt.Board{}, ttt.O, ttt.X)
	require.NoError(t, e)
	assert.Equal(t, 4, a.Move)
	assert.Equal(t, 0, a.Value)
	require.Len(t, a.Candidates, 9)
	for _, c := range a.Candidates {
		assert.Equal(t, 0, c.Value, "candidate %s", notation.FormatMove(c.Move))
	}
}

func TestImmediateWin(t *testing.T) {
	cells := []ttt.Mark{
		ttt.O, ttt.O, ttt.Empty,
		ttt.X, ttt.Empty, ttt.Empty,
		ttt.Empty, ttt.Empty, ttt.Empty,
	}
	m, e := BestMove(cells, ttt.O, ttt.X)
	require.NoError(t, e)
	assert.Equal(t, 2, m)

	a, e := NewMinimax(MinimaxConfig{}).Analyze(board("oo./x../..."), ttt.O, ttt.X)
	require.NoError(t, e)
	assert.Equal(t, WinValue, a.Value)
}

func TestBlock(t *testing.T) {
	cells := []ttt.Mark{
		ttt.X, ttt.X, ttt.Empty,
		ttt.Empty, ttt.Empty, ttt.Empty,
		ttt.Empty, ttt.Empty, ttt.Empty,
	}
	m, e := BestMove(cells, ttt.O, ttt.X)
	require.NoError(t, e)
	assert.Equal(t, 2, m)

	a, e := NewMinimax(MinimaxConfig{}).Analyze(board("xx./.../..."), ttt.O, ttt.X)
	require.NoError(t, e)
	// x still forks through the center and wins on its second move
	assert.Equal(t, -WinValue+3, a.Value)
	for _, c := range a.Candidates {
		if c.Move != 2 {
			assert.Equal(t, -WinValue+1, c.Value, "candidate %s", notation.FormatMove(c.Move))
		}
	}
}

func TestDoesNotMutateInput(t *testing.T) {
	cells := []ttt.Mark{
		ttt.X, ttt.Empty, ttt.Empty,
		ttt.Empty, ttt.O, ttt.Empty,
		ttt.Empty, ttt.Empty, ttt.X,
	}
	before := append([]ttt.Mark(nil), cells...)
	_, e := BestMove(cells, ttt.O, ttt.X)
	require.NoError(t, e)
	assert.Equal(t, before, cells)
}

func TestBestMoveErrors(t *testing.T) {
	cases := []struct {
		name  string
		cells []ttt.Mark
		owner ttt.Mark
		opp   ttt.Mark
		want  error
	}{
		{"short", make([]ttt.Mark, 8), ttt.O, ttt.X, ttt.ErrInvalidBoard},
		{"long", make([]ttt.Mark, 10), ttt.O, ttt.X, ttt.ErrInvalidBoard},
		{"bad mark", []ttt.Mark{5, 0, 0, 0, 0, 0, 0, 0, 0}, ttt.O, ttt.X, ttt.ErrInvalidBoard},
		{"same marks", make([]ttt.Mark, 9), ttt.O, ttt.O, ttt.ErrInvalidBoard},
		{"empty owner", make([]ttt.Mark, 9), ttt.Empty, ttt.X, ttt.ErrInvalidBoard},
		{"full", []ttt.Mark{
			ttt.X, ttt.O, ttt.X,
			ttt.X, ttt.O, ttt.O,
			ttt.O, ttt.X, ttt.X,
		}, ttt.O, ttt.X, ttt.ErrNoLegalMove},
		{"double win", []ttt.Mark{
			ttt.X, ttt.X, ttt.X,
			ttt.O, ttt.O, ttt.O,
			ttt.Empty, ttt.Empty, ttt.Empty,
		}, ttt.O, ttt.X, ttt.ErrInvariantViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, e := BestMove(tc.cells, tc.owner, tc.opp)
			assert.True(t, errors.Is(e, tc.want), "err=%v want %v", e, tc.want)
		})
	}
}

// positions returns every reachable, unfinished position with x
// moving first.
func positions() []*ttt.Position {
	seen := make(map[ttt.Key]bool)
	var out []*ttt.Position
	var walk func(p *ttt.Position)
	walk = func(p *ttt.Position) {
		b := p.Board()
		if seen[b.Key()] {
			return
		}
		seen[b.Key()] = true
		if over, _ := p.GameOver(); over {
			return
		}
		out = append(out, p)
		for _, m := range p.LegalMoves() {
			next, e := p.Move(m)
			if e != nil {
				panic(e)
			}
			walk(next)
		}
	}
	walk(ttt.New(ttt.X))
	return out
}

// reference is plain minimax with the same scoring and no pruning.
func reference(b ttt.Board, depth int, maximizing bool, owner ttt.Mark) int {
	if b.HasWinner() {
		if maximizing {
			return -WinValue + depth
		}
		return WinValue - depth
	}
	if b.Full() {
		return 0
	}
	best, mark := MaxEval, owner.Flip()
	if maximizing {
		best, mark = MinEval, owner
	}
	for i := range b {
		if b[i] != ttt.Empty {
			continue
		}
		b[i] = mark
		v := reference(b, depth+1, !maximizing, owner)
		b[i] = ttt.Empty
		if maximizing && v > best || !maximizing && v < best {
			best = v
		}
	}
	return best
}

func TestValuesMatchReference(t *testing.T) {
	withTable := NewMinimax(MinimaxConfig{})
	noTable := NewMinimax(MinimaxConfig{NoTable: true})
	for _, p := range positions() {
		b := p.Board()
		owner := p.ToMove()
		a, e := withTable.Analyze(b, owner, owner.Flip())
		require.NoError(t, e)
		for _, c := range a.Candidates {
			child := b
			child[c.Move] = owner
			if want := reference(child, 0, false, owner); c.Value != want {
				t.Fatalf("%s: candidate %s value=%d want %d",
					notation.FormatPosition(p), notation.FormatMove(c.Move), c.Value, want)
			}
		}

		plain, e := noTable.Analyze(b, owner, owner.Flip())
		require.NoError(t, e)
		if plain.Move != a.Move || plain.Value != a.Value {
			t.Fatalf("%s: table=(%d,%d) no-table=(%d,%d)",
				notation.FormatPosition(p), a.Move, a.Value, plain.Move, plain.Value)
		}
	}
}

func TestDeterministic(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	for _, p := range positions() {
		b := p.Board()
		first, e := ai.BestMove(b, p.ToMove(), p.ToMove().Flip())
		require.NoError(t, e)
		if b[first] != ttt.Empty {
			t.Fatalf("%s: move %d is occupied", notation.FormatPosition(p), first)
		}
		for i := 0; i < 3; i++ {
			again, _ := ai.BestMove(b, p.ToMove(), p.ToMove().Flip())
			if again != first {
				t.Fatalf("%s: move %d then %d", notation.FormatPosition(p), first, again)
			}
		}
	}
}

// Play the engine against every possible opponent line; it must never
// lose from either seat.
func TestNeverLoses(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	ctx := context.Background()
	var games int
	var walk func(p *ttt.Position, engine ttt.Mark, line []int)
	walk = func(p *ttt.Position, engine ttt.Mark, line []int) {
		if over, w := p.GameOver(); over {
			games++
			if w == engine.Flip() {
				t.Fatalf("engine %s lost: %s", engine, notation.FormatMoves(line))
			}
			return
		}
		if p.ToMove() == engine {
			m, e := ai.GetMove(ctx, p)
			require.NoError(t, e)
			next, e := p.Move(m)
			require.NoError(t, e)
			walk(next, engine, append(line, m))
			return
		}
		for _, m := range p.LegalMoves() {
			next, _ := p.Move(m)
			walk(next, engine, append(append([]int(nil), line...), m))
		}
	}
	walk(ttt.New(ttt.X), ttt.O, nil)
	walk(ttt.New(ttt.X), ttt.X, nil)
	if games == 0 {
		t.Fatal("no games played")
	}
}

func TestTableStats(t *testing.T) {
	a, e := NewMinimax(MinimaxConfig{}).Analyze(ttt.Board{}, ttt.O, ttt.X)
	require.NoError(t, e)
	assert.NotZero(t, a.Stats.TTHits)
	assert.NotZero(t, a.Stats.TableSize)
	assert.Equal(t, 9, a.Stats.Candidates)

	plain, e := NewMinimax(MinimaxConfig{NoTable: true}).Analyze(ttt.Board{}, ttt.O, ttt.X)
	require.NoError(t, e)
	assert.Zero(t, plain.Stats.TTHits)
	assert.Zero(t, plain.Stats.TableSize)
	assert.Greater(t, plain.Stats.Visited, a.Stats.Visited)
}

func TestGetMoveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, e := NewMinimax(MinimaxConfig{}).GetMove(ctx, ttt.New(ttt.X))
	assert.Equal(t, context.Canceled, e)
}
