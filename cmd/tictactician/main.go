package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/nelhage/tictactician/cmd/internal/analyze"
	"github.com/nelhage/tictactician/cmd/internal/canonicalize"
	"github.com/nelhage/tictactician/cmd/internal/genopenings"
	"github.com/nelhage/tictactician/cmd/internal/play"
	"github.com/nelhage/tictactician/cmd/internal/selfplay"
	"github.com/nelhage/tictactician/cmd/internal/serve"
	"github.com/nelhage/tictactician/cmd/internal/stats"
	"github.com/nelhage/tictactician/cmd/internal/tei"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&tei.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&stats.Command{}, "")
	subcommands.Register(&canonicalize.Command{}, "")
	subcommands.Register(&genopenings.Command{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
