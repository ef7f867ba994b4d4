package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nelhage/tictactician/ttt"
)

// ParseBoard reads rows of three cells separated by '/', top row
// first: "x.o/.x./..o". '.' or '_' is an empty cell.
func ParseBoard(s string) (ttt.Board, error) {
	var b ttt.Board
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != ttt.Size {
		return b, fmt.Errorf("%w: %d rows", ttt.ErrInvalidBoard, len(rows))
	}
	for y, r := range rows {
		if len(r) != ttt.Size {
			return b, fmt.Errorf("%w: row %d bad length: %d", ttt.ErrInvalidBoard, y, len(r))
		}
		for x := 0; x < ttt.Size; x++ {
			switch r[x] {
			case 'x', 'X':
				b[y*ttt.Size+x] = ttt.X
			case 'o', 'O':
				b[y*ttt.Size+x] = ttt.O
			case '.', '_':
			default:
				return b, fmt.Errorf("%w: bad cell %q", ttt.ErrInvalidBoard, r[x])
			}
		}
	}
	return b, nil
}

func FormatBoard(b ttt.Board) string {
	var out strings.Builder
	for i, c := range b {
		if i != 0 && i%ttt.Size == 0 {
			out.WriteByte('/')
		}
		switch c {
		case ttt.X:
			out.WriteByte('x')
		case ttt.O:
			out.WriteByte('o')
		default:
			out.WriteByte('.')
		}
	}
	return out.String()
}

// ParsePosition reads a board followed by the side to move:
// "x.o/.x./... o".
func ParsePosition(s string) (*ttt.Position, error) {
	words := strings.Fields(s)
	if len(words) != 2 {
		return nil, errors.New("bad position: wrong number of words")
	}
	b, e := ParseBoard(words[0])
	if e != nil {
		return nil, e
	}
	toMove, e := ParseMark(words[1])
	if e != nil {
		return nil, fmt.Errorf("bad side to move: %w", e)
	}
	return ttt.FromBoard(b, toMove)
}

func FormatPosition(p *ttt.Position) string {
	return fmt.Sprintf("%s %s", FormatBoard(p.Board()), p.ToMove())
}
