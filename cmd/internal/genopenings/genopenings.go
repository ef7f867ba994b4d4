package genopenings

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/symmetry"
)

type Command struct {
	depth int
}

func (*Command) Name() string     { return "genopenings" }
func (*Command) Synopsis() string { return "List every distinct opening position" }
func (*Command) Usage() string {
	return `genopenings [flags]

Print one position per symmetry class reachable in -depth plies, in the
format selfplay and analyze accept.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.depth, "depth", 2, "generate openings to what depth")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.depth < 0 || c.depth > 9 {
		flag.Usage()
		return subcommands.ExitUsageError
	}
	for _, pos := range symmetry.Openings(c.depth) {
		fmt.Println(notation.FormatPosition(pos))
	}
	return subcommands.ExitSuccess
}
