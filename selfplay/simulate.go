package selfplay

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

// AIFactory builds a fresh player for each worker. Players that
// implement io.Closer are closed when their worker exits.
type AIFactory interface {
	GetPlayer() (ai.Player, error)
	String() string
}

type Config struct {
	Games int

	Verbose bool

	Initial []*ttt.Position

	P1, P2 AIFactory

	Swap    bool
	Threads int
	Limit   time.Duration

	// Progress, if set, receives a progress bar.
	Progress io.Writer
}

type PlayerStats struct {
	Wins  int
	XWins int
	OWins int
}

type Stats struct {
	Players [2]PlayerStats
	X, O    int
	Draws   int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.X + s.O + s.Draws
}

type gameSpec struct {
	opening *ttt.Position
	oi      int
	i       int
	p1mark  ttt.Mark
}

type Result struct {
	Opening  int
	Game     int
	P1Mark   ttt.Mark
	Initial  *ttt.Position
	Position *ttt.Position
	Moves    []int
	Winner   ttt.Mark
}

func (r *Result) add(st *Stats) {
	switch r.Winner {
	case ttt.X:
		st.X++
	case ttt.O:
		st.O++
	default:
		st.Draws++
	}
	if r.Winner != ttt.Empty {
		pst := &st.Players[0]
		if r.Winner != r.P1Mark {
			pst = &st.Players[1]
		}
		if r.Winner == ttt.X {
			pst.XWins++
		} else {
			pst.OWins++
		}
		pst.Wins++
	}
	st.Games = append(st.Games, *r)
}

func (c *Config) total() int {
	n := c.Games
	if c.Swap {
		n *= 2
	}
	return n * len(c.Initial)
}

func newBar(out io.Writer, n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("selfplay"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        aurora.Yellow("█").String(),
			SaucerHead:    aurora.Yellow("█").String(),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
}

// Simulate plays every configured game and returns the tally. The
// first error from any game cancels the rest.
func Simulate(ctx context.Context, c *Config) (*Stats, error) {
	if c.P1 == nil || c.P2 == nil {
		return nil, fmt.Errorf("selfplay: both players are required")
	}
	initial := c.Initial
	if len(initial) == 0 {
		initial = []*ttt.Position{ttt.New(ttt.X)}
	}
	cfg := *c
	cfg.Initial = initial
	threads := c.Threads
	if threads < 1 {
		threads = 1
	}

	var bar *progressbar.ProgressBar
	if c.Progress != nil {
		bar = newBar(c.Progress, cfg.total())
		defer bar.Close()
	}

	g, ctx := errgroup.WithContext(ctx)
	gc := make(chan gameSpec)
	rc := make(chan Result)

	g.Go(func() error {
		defer close(gc)
		for oi, pos := range cfg.Initial {
			n := cfg.Games
			if cfg.Swap {
				n *= 2
			}
			for i := 0; i < n; i++ {
				p1mark := ttt.X
				if cfg.Swap && i%2 == 1 {
					p1mark = ttt.O
				}
				select {
				case gc <- gameSpec{opening: pos, oi: oi, i: i, p1mark: p1mark}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})

	workers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		workers.Go(func() error {
			return worker(wctx, &cfg, gc, rc)
		})
	}
	g.Go(func() error {
		defer close(rc)
		return workers.Wait()
	})

	var st Stats
	for r := range rc {
		if c.Verbose {
			log.Printf("[selfplay] game n=%d/%d plies=%d p1=%s winner=%s moves=%s",
				r.Opening, r.Game, r.Position.MoveNumber(),
				r.P1Mark, markName(r.Winner), notation.FormatMoves(r.Moves))
		}
		r.add(&st)
		if bar != nil {
			bar.Add(1)
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}

func markName(m ttt.Mark) string {
	if m == ttt.Empty {
		return "draw"
	}
	return m.String()
}

func closePlayer(p ai.Player) {
	if c, ok := p.(io.Closer); ok {
		c.Close()
	}
}

func worker(ctx context.Context, c *Config, games <-chan gameSpec, out chan<- Result) error {
	p1, err := c.P1.GetPlayer()
	if err != nil {
		return fmt.Errorf("starting %s: %w", c.P1, err)
	}
	defer closePlayer(p1)
	p2, err := c.P2.GetPlayer()
	if err != nil {
		return fmt.Errorf("starting %s: %w", c.P2, err)
	}
	defer closePlayer(p2)

	for g := range games {
		x, o := p1, p2
		if g.p1mark != ttt.X {
			x, o = o, x
		}
		r, err := playGame(ctx, c.Limit, g.opening, x, o)
		if err != nil {
			return fmt.Errorf("game %d/%d: %w", g.oi, g.i, err)
		}
		r.Opening, r.Game, r.P1Mark = g.oi, g.i, g.p1mark
		select {
		case out <- *r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func playGame(ctx context.Context, limit time.Duration, opening *ttt.Position, x, o ai.Player) (*Result, error) {
	r := &Result{Initial: opening}
	p := opening
	for {
		if over, w := p.GameOver(); over {
			r.Winner = w
			break
		}
		mctx, cancel := ctx, context.CancelFunc(func() {})
		if limit != 0 {
			mctx, cancel = context.WithTimeout(ctx, limit)
		}
		var m int
		var err error
		if p.ToMove() == ttt.X {
			m, err = x.GetMove(mctx, p)
		} else {
			m, err = o.GetMove(mctx, p)
		}
		cancel()
		if err != nil {
			return nil, fmt.Errorf("get move: %w", err)
		}
		next, err := p.Move(m)
		if err != nil {
			return nil, fmt.Errorf("illegal move %s: %w", notation.FormatMove(m), err)
		}
		p = next
		r.Moves = append(r.Moves, m)
	}
	r.Position = p
	return r, nil
}
