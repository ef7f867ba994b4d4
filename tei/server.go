package tei

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/context"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Engine struct {
	Config ai.MinimaxConfig

	in  *bufio.Reader
	out io.Writer

	mm  *ai.MinimaxAI
	pos *ttt.Position
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.in.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "tei":
			fmt.Fprintln(e.out, "id name Tictactician")
			fmt.Fprintln(e.out, "id author Nelson Elhage")
			fmt.Fprintln(e.out, "teiok")
		case "quit":
			return nil
		case "teinewgame":
			e.mm = nil
			e.pos = nil
		case "position":
			e.pos, err = parsePosition(words)
			if err != nil {
				return fmt.Errorf("error parsing position: %w", err)
			}
		case "go":
			if err := e.analyze(ctx, words); err != nil {
				log.Printf("[tei] error in go: %v", err)
				fmt.Fprintf(e.out, "info error %v\n", err)
				fmt.Fprintln(e.out, "bestmove none")
			}
		case "stop":
		case "isready":
			fmt.Fprintln(e.out, "readyok")
		default:
			return fmt.Errorf("Unknown command: %q", line)
		}
	}
}

func parsePosition(words []string) (*ttt.Position, error) {
	var pos *ttt.Position
	words = words[1:]
	if len(words) == 0 {
		return nil, errors.New("not enough arguments")
	}
	switch words[0] {
	case "startpos":
		words = words[1:]
		pos = ttt.New(ttt.X)
	case "board":
		// board ROWS TOMOVE
		if len(words) < 3 {
			return nil, errors.New("position board: not enough arguments")
		}
		var err error
		pos, err = notation.ParsePosition(strings.Join(words[1:3], " "))
		if err != nil {
			return nil, fmt.Errorf("Parse board: %w", err)
		}
		words = words[3:]
	default:
		return nil, fmt.Errorf("Unknown initial position: %q", words[0])
	}
	if len(words) == 0 {
		return pos, nil
	}
	if words[0] != "moves" {
		return nil, errors.New("position: expected `moves'")
	}
	for _, w := range words[1:] {
		m, err := notation.ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("Parse move %q: %w", w, err)
		}
		pos, err = pos.Move(m)
		if err != nil {
			return nil, fmt.Errorf("Move %q: %w", w, err)
		}
	}
	return pos, nil
}

func (e *Engine) analyze(ctx context.Context, words []string) error {
	if e.pos == nil {
		return errors.New("No position provided")
	}
	if e.mm == nil {
		e.mm = ai.NewMinimax(e.Config)
	}
	words = words[1:]
	if len(words) > 0 {
		if len(words) != 2 || words[0] != "movetime" {
			return errors.New("expected <movetime> N")
		}
		ms, err := strconv.ParseUint(words[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad ms: %v", words[1])
		}
		if ms > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
			defer cancel()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a, err := e.mm.Analyze(e.pos.Board(), e.pos.ToMove(), e.pos.ToMove().Flip())
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "info value %d nodes %d tthits %d time %d\n",
		a.Value,
		a.Stats.Visited,
		a.Stats.TTHits,
		a.Stats.Elapsed/time.Millisecond,
	)
	fmt.Fprintf(e.out, "bestmove %s\n", notation.FormatMove(a.Move))
	return nil
}
