// Package server exposes the engine over gRPC. Engine holds the
// request handling shared with the HTTP API.
package server

import (
	"errors"
	"fmt"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/symmetry"
	"github.com/nelhage/tictactician/ttt"
)

type Engine struct {
	mm *ai.MinimaxAI
}

func NewEngine(cfg ai.MinimaxConfig) *Engine {
	return &Engine{mm: ai.NewMinimax(cfg)}
}

// Position parses a position and rejects ones no move can be made
// from.
func (e *Engine) Position(s string) (*ttt.Position, error) {
	p, err := notation.ParsePosition(s)
	if err != nil {
		return nil, &parseError{err}
	}
	if over, w := p.GameOver(); over && w != ttt.Empty {
		return nil, fmt.Errorf("%w: %s has won", ttt.ErrGameOver, w)
	}
	return p, nil
}

func (e *Engine) Analyze(p *ttt.Position) (*ai.Analysis, error) {
	return e.mm.Analyze(p.Board(), p.ToMove(), p.ToMove().Flip())
}

// Winner reports the winning mark on a board, and whether the game is
// over.
func (e *Engine) Winner(s string) (ttt.Mark, bool, error) {
	b, err := notation.ParseBoard(s)
	if err != nil {
		return ttt.Empty, false, &parseError{err}
	}
	if b.Wins(ttt.X) && b.Wins(ttt.O) {
		return ttt.Empty, false, ttt.ErrInvariantViolation
	}
	w := b.Winner()
	return w, w != ttt.Empty || b.Full(), nil
}

// Canonicalize maps a move record onto its symmetry-canonical form.
func (e *Engine) Canonicalize(s string) (string, error) {
	ms, err := notation.ParseMoves(s)
	if err != nil {
		return "", &parseError{err}
	}
	out, err := symmetry.Canonical(ms)
	if err != nil {
		return "", err
	}
	return notation.FormatMoves(out), nil
}

type parseError struct {
	err error
}

func (p *parseError) Error() string { return "parse: " + p.err.Error() }
func (p *parseError) Unwrap() error { return p.err }

type Kind int

const (
	Internal Kind = iota
	BadRequest
	Conflict
)

// KindOf classifies an error returned by Engine so transports can
// pick a status code.
func KindOf(err error) Kind {
	var pe *parseError
	switch {
	case errors.Is(err, ttt.ErrNoLegalMove),
		errors.Is(err, ttt.ErrGameOver),
		errors.Is(err, ttt.ErrInvariantViolation):
		return Conflict
	case errors.As(err, &pe),
		errors.Is(err, ttt.ErrInvalidBoard),
		errors.Is(err, ttt.ErrOccupied),
		errors.Is(err, ttt.ErrOutOfRange):
		return BadRequest
	}
	return Internal
}

// MarkName is the wire name of a mark; Empty is "".
func MarkName(m ttt.Mark) string {
	if m == ttt.Empty {
		return ""
	}
	return m.String()
}
