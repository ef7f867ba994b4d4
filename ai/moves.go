package ai

import (
	"sort"

	"github.com/nelhage/tictactician/ttt"
)

// PositionWeights breaks ties between quiet moves: center, then
// corners, then edges.
var PositionWeights = [ttt.Cells]int{
	3, 2, 3,
	2, 4, 2,
	3, 2, 3,
}

const (
	WinScore   = 1000
	BlockScore = 900
	ForkBonus  = 300
)

type ScoredMove struct {
	Move  int
	Score int
}

func moveScore(b ttt.Board, move int, owner, opponent ttt.Mark) int {
	b[move] = owner
	if b.Wins(owner) {
		return WinScore
	}
	b[move] = opponent
	if b.Wins(opponent) {
		return BlockScore
	}
	b[move] = ttt.Empty
	score := PositionWeights[move]
	if CreatesFork(b, move, owner) {
		score += ForkBonus
	}
	return score
}

// ScoreMoves returns every empty cell with its heuristic score, best
// first. Equal scores keep ascending cell order.
func ScoreMoves(b ttt.Board, owner, opponent ttt.Mark) []ScoredMove {
	empty := b.EmptyCells()
	out := make([]ScoredMove, len(empty))
	for i, m := range empty {
		out[i] = ScoredMove{Move: m, Score: moveScore(b, m, owner, opponent)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func OrderedMoves(b ttt.Board, owner, opponent ttt.Mark) []int {
	scored := ScoreMoves(b, owner, opponent)
	out := make([]int, len(scored))
	for i, s := range scored {
		out[i] = s.Move
	}
	return out
}
