package ttt

import (
	"errors"
	"fmt"
)

var (
	ErrOccupied   = errors.New("cell is occupied")
	ErrOutOfRange = errors.New("cell out of range")
	ErrGameOver   = errors.New("game is over")
)

// Position is an immutable game state. Move returns a new Position
// and leaves the receiver untouched.
type Position struct {
	board  Board
	toMove Mark
	move   int
}

// New returns an empty board with first to move.
func New(first Mark) *Position {
	if first != X && first != O {
		panic(fmt.Sprintf("New: bad first mover %v", first))
	}
	return &Position{toMove: first}
}

// FromBoard builds a position from an arbitrary board. The ply count
// is the number of marks already placed.
func FromBoard(b Board, toMove Mark) (*Position, error) {
	if toMove != X && toMove != O {
		return nil, fmt.Errorf("%w: bad side to move %d", ErrInvalidBoard, toMove)
	}
	if b.Wins(X) && b.Wins(O) {
		return nil, ErrInvariantViolation
	}
	return &Position{
		board:  b,
		toMove: toMove,
		move:   Cells - len(b.EmptyCells()),
	}, nil
}

func (p *Position) Board() Board {
	return p.board
}

func (p *Position) At(i int) Mark {
	return p.board[i]
}

func (p *Position) ToMove() Mark {
	return p.toMove
}

func (p *Position) MoveNumber() int {
	return p.move
}

func (p *Position) GameOver() (over bool, winner Mark) {
	if w := p.board.Winner(); w != Empty {
		return true, w
	}
	return p.board.Full(), Empty
}

func (p *Position) LegalMoves() []int {
	if over, _ := p.GameOver(); over {
		return nil
	}
	return p.board.EmptyCells()
}

func (p *Position) Move(i int) (*Position, error) {
	if i < 0 || i >= Cells {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if over, _ := p.GameOver(); over {
		return nil, ErrGameOver
	}
	if p.board[i] != Empty {
		return nil, fmt.Errorf("%w: %d", ErrOccupied, i)
	}
	next := *p
	next.board[i] = p.toMove
	next.toMove = p.toMove.Flip()
	next.move++
	return &next, nil
}
