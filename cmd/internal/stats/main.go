package stats

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/tictactician/logs"
)

type Command struct {
	db     string
	recent int
}

func (*Command) Name() string     { return "stats" }
func (*Command) Synopsis() string { return "Summarize recorded games" }
func (*Command) Usage() string {
	return `stats [-db FILE] [-recent N] PLAYER...

Print the win/loss record of each named player from a game database
written by play -db or selfplay -db.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "games.db", "sqlite database")
	flags.IntVar(&c.recent, "recent", 0, "also list the N most recent games")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Fatalf("open %s: %v", c.db, err)
	}
	defer repo.Close()

	for _, player := range flag.Args() {
		st, err := repo.Stats(player)
		if err != nil {
			log.Printf("stats: %v", err)
			return subcommands.ExitFailure
		}
		render(os.Stdout, player, st)
	}
	if c.recent > 0 {
		gs, err := repo.Recent(c.recent)
		if err != nil {
			log.Printf("recent: %v", err)
			return subcommands.ExitFailure
		}
		renderRecent(os.Stdout, gs)
	}
	return subcommands.ExitSuccess
}

func render(out io.Writer, player string, st *logs.PlayerStats) {
	pr := message.NewPrinter(language.English)
	pr.Fprintf(out, "%s: games=%d wins=%d losses=%d draws=%d moves=%d win-rate=%.1f%%\n",
		cases.Title(language.English).String(player),
		st.Games, st.Wins, st.Losses, st.Draws, st.Moves, st.WinRate())
}

func renderRecent(out io.Writer, gs []logs.Game) {
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "time\tx\to\twinner\tmoves\n")
	for _, g := range gs {
		w := g.Winner
		if w == "" {
			w = "draw"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			g.Timestamp.Format("2006-01-02 15:04:05"), g.PlayerX, g.PlayerO, w, g.Record)
	}
	tw.Flush()
}
