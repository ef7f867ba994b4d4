package opt

import (
	"flag"

	"github.com/nelhage/tictactician/ai"
)

type Minimax struct {
	Debug int
	Table bool
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.BoolVar(&o.Table, "table", true, "use the transposition table")
}

func (o *Minimax) BuildConfig() ai.MinimaxConfig {
	return ai.MinimaxConfig{
		Debug:   o.Debug,
		NoTable: !o.Table,
	}
}
