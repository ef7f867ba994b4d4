package ai

import (
	"golang.org/x/net/context"

	"github.com/nelhage/tictactician/ttt"
)

type Player interface {
	GetMove(ctx context.Context, p *ttt.Position) (int, error)
}
