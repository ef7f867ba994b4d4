package analyze

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/cli"
	"github.com/nelhage/tictactician/cmd/internal/opt"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Command struct {
	quiet     bool
	variation string

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a position" }
func (*Command) Usage() string {
	return `analyze [options] POSITION

Evaluate a position such as "xx./.o./... o" (rows top to bottom, then the
side to move). Prints every candidate in the order the search tries them
along with its value.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves before analysis")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pos := ttt.New(ttt.X)
	if flag.NArg() > 0 {
		var e error
		pos, e = notation.ParsePosition(strings.Join(flag.Args(), " "))
		if e != nil {
			log.Fatal("parse: ", e)
		}
	}
	if c.variation != "" {
		ms, e := notation.ParseMoves(c.variation)
		if e != nil {
			log.Fatal("-variation: ", e)
		}
		for _, m := range ms {
			pos, e = pos.Move(m)
			if e != nil {
				log.Fatalf("-variation: %s: %v", notation.FormatMove(m), e)
			}
		}
	}

	mm := ai.NewMinimax(c.mmopt.BuildConfig())
	a, e := mm.Analyze(pos.Board(), pos.ToMove(), pos.ToMove().Flip())
	if e != nil {
		log.Printf("analyze: %v", e)
		return subcommands.ExitFailure
	}
	if !c.quiet {
		cli.RenderBoard(nil, false, os.Stdout, pos)
		fmt.Println()
	}
	printAnalysis(os.Stdout, a)
	return subcommands.ExitSuccess
}

func printAnalysis(out io.Writer, a *ai.Analysis) {
	fmt.Fprintf(out, "AI analysis:\n")
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, " move\tscore\tvalue\n")
	for _, cand := range a.Candidates {
		fmt.Fprintf(tw, " %s\t%d\t%d\n", notation.FormatMove(cand.Move), cand.Score, cand.Value)
	}
	tw.Flush()
	fmt.Fprintf(out, " best=%s value=%d\n", notation.FormatMove(a.Move), a.Value)
	fmt.Fprintf(out, " visited=%d terminal=%d cutoffs=%d tt=%d/%d time=%s\n",
		a.Stats.Visited, a.Stats.Terminal, a.Stats.Cutoffs,
		a.Stats.TTHits, a.Stats.TableSize, a.Stats.Elapsed)
}
