package ai

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/net/context"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

const (
	// MaxEval stands in for infinity; every real value lies in
	// [-WinValue, WinValue].
	MaxEval  = 1 << 10
	MinEval  = -MaxEval
	WinValue = 10
)

type MinimaxConfig struct {
	Debug int

	NoTable bool
}

type Stats struct {
	Candidates int
	Visited    uint64
	Terminal   uint64
	Cutoffs    uint64
	TTHits     uint64
	TableSize  int
	Elapsed    time.Duration
}

type Candidate struct {
	Move  int
	Score int
	Value int
}

type Analysis struct {
	Move       int
	Value      int
	Candidates []Candidate
	Stats      Stats
}

// MinimaxAI holds configuration only. Each call builds its own search
// state, so a single MinimaxAI can be shared.
type MinimaxAI struct {
	cfg MinimaxConfig
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	return &MinimaxAI{cfg: cfg}
}

var defaultAI = NewMinimax(MinimaxConfig{})

// BestMove validates a caller-supplied board and returns the index
// of the best empty cell for owner.
func BestMove(cells []ttt.Mark, owner, opponent ttt.Mark) (int, error) {
	b, e := ttt.FromCells(cells)
	if e != nil {
		return 0, e
	}
	return defaultAI.BestMove(b, owner, opponent)
}

// Validate checks everything BestMove requires before searching.
func Validate(b ttt.Board, owner, opponent ttt.Mark) error {
	if (owner != ttt.X && owner != ttt.O) || opponent != owner.Flip() {
		return fmt.Errorf("%w: bad marks owner=%d opponent=%d", ttt.ErrInvalidBoard, owner, opponent)
	}
	for i, c := range b {
		if c != ttt.Empty && c != owner && c != opponent {
			return fmt.Errorf("%w: bad mark %d at cell %d", ttt.ErrInvalidBoard, c, i)
		}
	}
	if b.Wins(owner) && b.Wins(opponent) {
		return ttt.ErrInvariantViolation
	}
	if b.Full() {
		return ttt.ErrNoLegalMove
	}
	return nil
}

func (m *MinimaxAI) GetMove(ctx context.Context, p *ttt.Position) (int, error) {
	if e := ctx.Err(); e != nil {
		return 0, e
	}
	return m.BestMove(p.Board(), p.ToMove(), p.ToMove().Flip())
}

func (m *MinimaxAI) BestMove(b ttt.Board, owner, opponent ttt.Mark) (int, error) {
	a, e := m.Analyze(b, owner, opponent)
	if e != nil {
		return 0, e
	}
	return a.Move, nil
}

func (m *MinimaxAI) Analyze(b ttt.Board, owner, opponent ttt.Mark) (*Analysis, error) {
	if e := Validate(b, owner, opponent); e != nil {
		return nil, e
	}
	start := time.Now()
	s := newSearch(m.cfg.NoTable)
	s.reset(b, owner, opponent)

	var a Analysis
	bestValue := MinEval - 1
	for _, sm := range ScoreMoves(b, owner, opponent) {
		s.board[sm.Move] = owner
		v := s.evaluate(0, false, MinEval, MaxEval)
		s.board[sm.Move] = ttt.Empty

		a.Candidates = append(a.Candidates, Candidate{Move: sm.Move, Score: sm.Score, Value: v})
		if m.cfg.Debug > 1 {
			log.Printf("[minimax]  candidate=%s score=%d value=%d",
				notation.FormatMove(sm.Move), sm.Score, v)
		}
		if v > bestValue {
			bestValue = v
			a.Move = sm.Move
		}
	}
	a.Value = bestValue
	a.Stats = s.st
	a.Stats.Candidates = len(a.Candidates)
	a.Stats.TableSize = s.table.len()
	a.Stats.Elapsed = time.Since(start)
	if m.cfg.Debug > 0 {
		log.Printf("[minimax] board=%s owner=%s move=%s value=%d visited=%d terminal=%d cut=%d tt=%d/%d time=%s",
			notation.FormatBoard(b), owner,
			notation.FormatMove(a.Move), a.Value,
			a.Stats.Visited, a.Stats.Terminal, a.Stats.Cutoffs,
			a.Stats.TTHits, a.Stats.TableSize, a.Stats.Elapsed)
	}
	return &a, nil
}

// search is the state of one top-level search: a scratch board that
// evaluate mutates and restores, the table, and counters.
type search struct {
	board    ttt.Board
	owner    ttt.Mark
	opponent ttt.Mark

	table *table
	st    Stats
}

func newSearch(noTable bool) *search {
	return &search{table: newTable(noTable)}
}

func (s *search) reset(b ttt.Board, owner, opponent ttt.Mark) {
	s.board = b
	s.owner = owner
	s.opponent = opponent
	s.table.clear()
	s.st = Stats{}
}

// evaluate scores s.board from the owner's point of view. maximizing
// means the owner is to move. A completed line belongs to the side
// that just moved, so it scores against whoever is to move now,
// discounted by depth.
func (s *search) evaluate(depth int, maximizing bool, α, β int) int {
	s.st.Visited++
	k := s.board.Key()
	if te, ok := s.table.get(k); ok && te.suffices(α, β) {
		s.st.TTHits++
		return te.value
	}

	if s.board.HasWinner() {
		s.st.Terminal++
		if maximizing {
			return -WinValue + depth
		}
		return WinValue - depth
	}
	if s.board.Full() {
		s.st.Terminal++
		return 0
	}

	α0, β0 := α, β
	best, mark := MaxEval, s.opponent
	if maximizing {
		best, mark = MinEval, s.owner
	}
	for i := 0; i < ttt.Cells; i++ {
		if s.board[i] != ttt.Empty {
			continue
		}
		s.board[i] = mark
		v := s.evaluate(depth+1, !maximizing, α, β)
		s.board[i] = ttt.Empty

		if maximizing {
			if v > best {
				best = v
			}
			if best > α {
				α = best
			}
		} else {
			if v < best {
				best = v
			}
			if best < β {
				β = best
			}
		}
		if β <= α {
			s.st.Cutoffs++
			break
		}
	}

	te := tableEntry{value: best, bound: exactBound}
	if best <= α0 {
		te.bound = upperBound
	} else if best >= β0 {
		te.bound = lowerBound
	}
	s.table.put(k, te)
	return best
}
