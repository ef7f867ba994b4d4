package canonicalize

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/subcommands"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/symmetry"
)

type Command struct{}

func (*Command) Name() string     { return "canonicalize" }
func (*Command) Synopsis() string { return "Canonicalize the symmetry of a game record" }
func (*Command) Usage() string {
	return `canonicalize MOVE...

Rewrite a game record, x moving first, into its canonical orientation.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(flag.Args()) == 0 {
		flag.Usage()
		return subcommands.ExitUsageError
	}

	ms, e := notation.ParseMoves(strings.Join(flag.Args(), " "))
	if e != nil {
		log.Fatalf("parse: %v", e)
	}
	out, e := symmetry.Canonical(ms)
	if e != nil {
		log.Fatalf("canonicalize: %v", e)
	}
	fmt.Println(notation.FormatMoves(out))
	return subcommands.ExitSuccess
}
