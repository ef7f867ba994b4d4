package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(p *ttt.Position) (int, error) {
	for {
		fmt.Fprintf(c.out, "%s> ", p.ToMove())
		line, err := c.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, err
		}
		m, err := notation.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error: ", err)
			continue
		}
		return m, nil
	}
}

// FromAI adapts an engine to the CLI, bounding each move by limit
// when limit is nonzero.
func FromAI(p ai.Player, limit time.Duration) Player {
	return &aiPlayer{limit: limit, p: p}
}

type aiPlayer struct {
	limit time.Duration
	p     ai.Player
}

func (a *aiPlayer) GetMove(p *ttt.Position) (int, error) {
	ctx := context.Background()
	if a.limit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.limit)
		defer cancel()
	}
	return a.p.GetMove(ctx, p)
}
