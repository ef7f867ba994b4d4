package ttt

import (
	"errors"
	"fmt"
)

const (
	Size  = 3
	Cells = Size * Size
)

var (
	ErrInvalidBoard       = errors.New("invalid board")
	ErrNoLegalMove        = errors.New("no legal move")
	ErrInvariantViolation = errors.New("both players have a winning line")
)

// Lines lists the eight winning triples: rows, then columns, then
// diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is a 3x3 grid in row-major order. It is a value type; copies
// never alias.
type Board [Cells]Mark

// FromCells converts a caller-supplied slice into a Board.
func FromCells(cells []Mark) (Board, error) {
	var b Board
	if len(cells) != Cells {
		return b, fmt.Errorf("%w: %d cells", ErrInvalidBoard, len(cells))
	}
	for i, c := range cells {
		if !c.Valid() {
			return b, fmt.Errorf("%w: bad mark %d at cell %d", ErrInvalidBoard, c, i)
		}
		b[i] = c
	}
	return b, nil
}

func (b Board) HasWinner() bool {
	for _, l := range Lines {
		if b[l[0]] != Empty && b[l[0]] == b[l[1]] && b[l[1]] == b[l[2]] {
			return true
		}
	}
	return false
}

// Winner returns the mark owning a completed line, or Empty.
func (b Board) Winner() Mark {
	for _, l := range Lines {
		if b[l[0]] != Empty && b[l[0]] == b[l[1]] && b[l[1]] == b[l[2]] {
			return b[l[0]]
		}
	}
	return Empty
}

// Wins reports whether m owns a completed line.
func (b Board) Wins(m Mark) bool {
	for _, l := range Lines {
		if b[l[0]] == m && b[l[1]] == m && b[l[2]] == m {
			return true
		}
	}
	return false
}

func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// EmptyCells returns the indices of empty cells in ascending order.
func (b Board) EmptyCells() []int {
	out := make([]int, 0, Cells)
	for i, c := range b {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

func (b Board) Count(m Mark) int {
	n := 0
	for _, c := range b {
		if c == m {
			n++
		}
	}
	return n
}
