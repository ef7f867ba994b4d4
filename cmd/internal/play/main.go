package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/nelhage/tictactician/cli"
	"github.com/nelhage/tictactician/cmd/internal/opt"
	"github.com/nelhage/tictactician/logs"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Command struct {
	x     string
	o     string
	first string
	limit time.Duration
	games int
	db    string

	unicode bool
	color   bool

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play tic-tac-toe from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play tic-tac-toe on the command-line, against a human or AI. Players are
human, rand[:SEED], minimax, tei:CMDLINE or grpc:ADDR.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.x, "x", "human", "x player")
	flags.StringVar(&c.o, "o", "minimax", "o player")
	flags.StringVar(&c.first, "first", "x", "side to move first")
	flags.DurationVar(&c.limit, "limit", time.Minute, "ai time limit")
	flags.IntVar(&c.games, "games", 1, "number of games to play")
	flags.StringVar(&c.db, "db", "", "record games to this sqlite database")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")
	flags.BoolVar(&c.color, "color", true, "color the marks")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	first, err := notation.ParseMark(c.first)
	if err != nil {
		log.Fatalf("-first: %v", err)
	}
	var repo *logs.Repository
	if c.db != "" {
		repo, err = logs.Open(c.db)
		if err != nil {
			log.Fatalf("open %s: %v", c.db, err)
		}
		defer repo.Close()
	}

	in := bufio.NewReader(os.Stdin)
	x, closeX := c.parsePlayer(in, c.x)
	defer closeX()
	o, closeO := c.parsePlayer(in, c.o)
	defer closeO()

	board := cli.Scoreboard{AI: c.o, Player: c.x}
	for g := 0; g < c.games; g++ {
		st := &cli.CLI{
			First:  first,
			Out:    os.Stdout,
			X:      x,
			O:      o,
			Glyphs: glyphs(c.unicode),
			Color:  c.color,
		}
		p, err := st.Play()
		if err != nil {
			log.Printf("game %d: %v", g+1, err)
			return subcommands.ExitFailure
		}
		board.Record(p, ttt.O)
		if repo != nil {
			if err := repo.InsertGame(logs.NewGame(c.x, c.o, st.Moves(), p)); err != nil {
				log.Printf("record game: %v", err)
			}
		}
		if c.games > 1 {
			fmt.Println()
			board.Render(os.Stdout)
		}
	}

	return subcommands.ExitSuccess
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}

func (c *Command) parsePlayer(in *bufio.Reader, s string) (cli.Player, func()) {
	if s == "human" {
		return cli.NewCLIPlayer(os.Stdout, in), func() {}
	}
	f, err := opt.ParsePlayer(s, &c.mmopt)
	if err != nil {
		log.Fatal(err)
	}
	p, err := f.GetPlayer()
	if err != nil {
		log.Fatalf("%s: %v", s, err)
	}
	done := func() {}
	if cl, ok := p.(io.Closer); ok {
		done = func() { cl.Close() }
	}
	return cli.FromAI(p, c.limit), done
}
