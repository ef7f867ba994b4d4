package logs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

type Game struct {
	ID        string    `db:"id"`
	Timestamp time.Time `db:"time"`
	PlayerX   string    `db:"player_x"`
	PlayerO   string    `db:"player_o"`
	Winner    string    `db:"winner"`
	Moves     int       `db:"moves"`
	Record    string    `db:"record"`
}

// PlayerStats summarizes every logged game one player took part in.
type PlayerStats struct {
	Games  int `db:"games"`
	Wins   int `db:"wins"`
	Losses int `db:"losses"`
	Draws  int `db:"draws"`
	Moves  int `db:"moves"`
}

// WinRate is the share of games won, in percent.
func (s *PlayerStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return 100 * float64(s.Wins) / float64(s.Games)
}

// NewGame builds a log entry for a finished game. The winner is read
// from final; moves is the record leading to it.
func NewGame(playerX, playerO string, moves []int, final *ttt.Position) *Game {
	g := &Game{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		PlayerX:   playerX,
		PlayerO:   playerO,
		Moves:     len(moves),
		Record:    notation.FormatMoves(moves),
	}
	if _, w := final.GameOver(); w != ttt.Empty {
		g.Winner = w.String()
	}
	return g
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	_, err = sql.Exec(createGameTable)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	_, err = sql.Exec(createPlayerView)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: sql}
	repo.insert, err = sql.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(g *Game) error {
	return r.insertGame(r.insert, g)
}

func (r *Repository) insertGame(stmt *sqlx.NamedStmt, g *Game) error {
	_, err := stmt.Exec(g)
	return err
}

func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, g := range gs {
		if e := r.insertGame(stmt, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

func (r *Repository) Stats(player string) (*PlayerStats, error) {
	var st PlayerStats
	if err := r.db.Get(&st, statsQuery, player); err != nil {
		return nil, fmt.Errorf("stats %q: %w", player, err)
	}
	return &st, nil
}

// Recent returns up to n games, newest first.
func (r *Repository) Recent(n int) ([]Game, error) {
	var gs []Game
	if err := r.db.Select(&gs, recentQuery, n); err != nil {
		return nil, err
	}
	return gs, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
