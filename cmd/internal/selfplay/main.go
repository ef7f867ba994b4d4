package selfplay

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/nelhage/tictactician/cmd/internal/opt"
	"github.com/nelhage/tictactician/logs"
	"github.com/nelhage/tictactician/selfplay"
	"github.com/nelhage/tictactician/symmetry"
	"github.com/nelhage/tictactician/ttt"
)

type Command struct {
	p1 string
	p2 string

	games    int
	swap     bool
	openings int

	limit   time.Duration
	threads int

	summary  string
	db       string
	verbose  bool
	progress bool

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "minimax", "player1 spec")
	flags.StringVar(&c.p2, "p2", "rand", "player2 spec")

	flags.IntVar(&c.games, "games", 10, "number of games to play per opening/color")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.IntVar(&c.openings, "openings", 0, "start from every distinct opening of this many plies")
	flags.DurationVar(&c.limit, "limit", 0, "amount of time to search each move")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel games")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.StringVar(&c.db, "db", "", "record games to this sqlite database")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
	flags.BoolVar(&c.progress, "progress", true, "show a progress bar")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p1, err := opt.ParsePlayer(c.p1, &c.mmopt)
	if err != nil {
		log.Fatalf("-p1: %v", err)
	}
	p2, err := opt.ParsePlayer(c.p2, &c.mmopt)
	if err != nil {
		log.Fatalf("-p2: %v", err)
	}

	cfg := &selfplay.Config{
		Games:   c.games,
		Verbose: c.verbose,
		Initial: symmetry.Openings(c.openings),
		P1:      p1,
		P2:      p2,
		Swap:    c.swap,
		Threads: c.threads,
		Limit:   c.limit,
	}
	if c.progress {
		cfg.Progress = os.Stderr
	}

	st, err := selfplay.Simulate(ctx, cfg)
	if err != nil {
		log.Printf("selfplay: %v", err)
		return subcommands.ExitFailure
	}

	if c.summary != "" {
		if err := c.writeSummary(c.summary, st); err != nil {
			log.Println("writing summary: ", err.Error())
		}
	}
	if c.db != "" {
		if err := c.record(st); err != nil {
			log.Println("recording games: ", err.Error())
		}
	}

	log.Printf("done games=%d draws=%d x=%d o=%d limit=%s",
		st.Count(), st.Draws, st.X, st.O, c.limit)
	log.Printf("p1.wins=%d p2.wins=%d", st.Players[0].Wins, st.Players[1].Wins)
	tw := tabwriter.NewWriter(os.Stderr, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\tx\to\tsum\n")
	fmt.Fprintf(tw, "p1\t%d\t%d\t%d\n", st.Players[0].XWins, st.Players[0].OWins, st.Players[0].Wins)
	fmt.Fprintf(tw, "p2\t%d\t%d\t%d\n", st.Players[1].XWins, st.Players[1].OWins, st.Players[1].Wins)
	fmt.Fprintf(tw, "sum\t%d\t%d\t%d\n",
		st.Players[0].XWins+st.Players[1].XWins,
		st.Players[0].OWins+st.Players[1].OWins,
		st.Players[0].Wins+st.Players[1].Wins,
	)
	tw.Flush()

	a, b := int64(st.Players[0].Wins), int64(st.Players[1].Wins)
	if a < b {
		a, b = b, a
	}
	if a+b > 0 {
		log.Printf("p[one-sided]=%f", binomTest(a, b, 0.5))
	}

	return subcommands.ExitSuccess
}

func (c *Command) record(st *selfplay.Stats) error {
	repo, err := logs.Open(c.db)
	if err != nil {
		return err
	}
	defer repo.Close()
	gs := make([]*logs.Game, 0, len(st.Games))
	for _, r := range st.Games {
		x, o := c.p1, c.p2
		if r.P1Mark != ttt.X {
			x, o = o, x
		}
		gs = append(gs, logs.NewGame(x, o, r.Moves, r.Position))
	}
	return repo.InsertGames(gs)
}

func (c *Command) writeSummary(path string, stats *selfplay.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return selfplay.WriteSummary(f, &selfplay.Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Limit:   c.limit,
		Stats:   stats,
	})
}
