package cli

import (
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/tictactician/ttt"
)

// Scoreboard tallies games between an engine and a player across a
// session.
type Scoreboard struct {
	AI         string
	Player     string
	AIWins     int
	PlayerWins int
	Draws      int
	TotalMoves int
}

func (s *Scoreboard) Games() int {
	return s.AIWins + s.PlayerWins + s.Draws
}

// Record counts a finished game. aiMark is the side the engine played.
func (s *Scoreboard) Record(p *ttt.Position, aiMark ttt.Mark) {
	_, w := p.GameOver()
	switch w {
	case ttt.Empty:
		s.Draws++
	case aiMark:
		s.AIWins++
	default:
		s.PlayerWins++
	}
	s.TotalMoves += p.MoveNumber()
}

// WinRate is the player's share of games won, in percent.
func (s *Scoreboard) WinRate() float64 {
	if s.Games() == 0 {
		return 0
	}
	return 100 * float64(s.PlayerWins) / float64(s.Games())
}

func (s *Scoreboard) Render(out io.Writer) {
	title := cases.Title(language.English)
	pr := message.NewPrinter(language.English)
	ai, player := s.AI, s.Player
	if ai == "" {
		ai = "ai"
	}
	if player == "" {
		player = "player"
	}
	pr.Fprintf(out, "%s wins: %d\n", title.String(ai), s.AIWins)
	pr.Fprintf(out, "%s wins: %d\n", title.String(player), s.PlayerWins)
	pr.Fprintf(out, "Draws: %d\n", s.Draws)
	pr.Fprintf(out, "Win rate: %.1f%%\n", s.WinRate())
	pr.Fprintf(out, "Total moves: %d\n", s.TotalMoves)
}
