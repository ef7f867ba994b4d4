package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/logrusorgru/aurora"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Player interface {
	GetMove(p *ttt.Position) (int, error)
}

type Glyphs struct {
	X, O, Empty string
}

type CLI struct {
	moves []int
	p     *ttt.Position

	First  ttt.Mark
	Glyphs *Glyphs
	Color  bool
	Out    io.Writer
	X      Player
	O      Player
}

var DefaultGlyphs = Glyphs{
	X:     "X",
	O:     "O",
	Empty: " ",
}

var UnicodeGlyphs = Glyphs{
	X:     "✕",
	O:     "◯",
	Empty: "·",
}

func (c *CLI) Play() (*ttt.Position, error) {
	c.moves = nil
	first := c.First
	if first == ttt.Empty {
		first = ttt.X
	}
	c.p = ttt.New(first)
	for {
		c.render()
		if over, w := c.p.GameOver(); over {
			fmt.Fprintf(c.Out, "Game Over! ")
			if w == ttt.Empty {
				fmt.Fprintf(c.Out, "Draw.\n")
			} else {
				fmt.Fprintf(c.Out, "%s wins.\n", w)
			}
			return c.p, nil
		}
		var m int
		var e error
		if c.p.ToMove() == ttt.X {
			m, e = c.X.GetMove(c.p)
		} else {
			m, e = c.O.GetMove(c.p)
		}
		if e != nil {
			return c.p, fmt.Errorf("%s: %w", c.p.ToMove(), e)
		}
		p, e := c.p.Move(m)
		if e != nil {
			fmt.Fprintln(c.Out, "illegal move:", e)
			continue
		}
		if c.p.MoveNumber()%2 == 0 {
			fmt.Fprintf(c.Out, "%d. %s\n", c.p.MoveNumber()/2+1, notation.FormatMove(m))
		} else {
			fmt.Fprintf(c.Out, "%d. ... %s\n", c.p.MoveNumber()/2+1, notation.FormatMove(m))
		}
		c.p = p
		c.moves = append(c.moves, m)
	}
}

func (c *CLI) Moves() []int {
	return c.moves
}

func (c *CLI) render() {
	RenderBoard(c.Glyphs, c.Color, c.Out, c.p)
}

func RenderBoard(g *Glyphs, color bool, out io.Writer, p *ttt.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	au := aurora.NewAurora(color)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s to play]\n", p.ToMove())
	w := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	fmt.Fprintf(w, "\t")
	for x := 0; x < ttt.Size; x++ {
		fmt.Fprintf(w, "%c\t", 'a'+x)
	}
	fmt.Fprintf(w, "\n")
	for y := 0; y < ttt.Size; y++ {
		fmt.Fprintf(w, "%c.\t", '1'+y)
		for x := 0; x < ttt.Size; x++ {
			var cell string
			switch p.At(y*ttt.Size + x) {
			case ttt.X:
				cell = au.Red(g.X).Bold().String()
			case ttt.O:
				cell = au.Blue(g.O).Bold().String()
			case ttt.Empty:
				cell = g.Empty
			default:
				panic(fmt.Sprintf("bad mark %d", p.At(y*ttt.Size+x)))
			}
			fmt.Fprintf(w, "[%s]\t", cell)
		}
		fmt.Fprintf(w, "\n")
	}
	w.Flush()
}
