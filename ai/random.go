package ai

import (
	"math/rand"

	"golang.org/x/net/context"

	"github.com/nelhage/tictactician/ttt"
)

// RandomAI plays a uniformly random legal move.
type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, p *ttt.Position) (int, error) {
	if e := ctx.Err(); e != nil {
		return 0, e
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return 0, ttt.ErrNoLegalMove
	}
	return moves[r.r.Intn(len(moves))], nil
}

func NewRandom(seed int64) *RandomAI {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
