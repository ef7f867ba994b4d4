package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nelhage/tictactician/ttt"
)

var moveRE = regexp.MustCompile(`^(?:([a-c])([1-3])|([0-8]))$`)

// ParseMove accepts either a square name (a1 .. c3, column then row,
// row 1 on top) or a bare cell index 0-8.
func ParseMove(move string) (int, error) {
	groups := moveRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(move)))
	if groups == nil {
		return 0, fmt.Errorf("illegal move: %q", move)
	}
	if groups[3] != "" {
		return int(groups[3][0] - '0'), nil
	}
	x := int(groups[1][0] - 'a')
	y := int(groups[2][0] - '1')
	return y*ttt.Size + x, nil
}

func FormatMove(i int) string {
	if i < 0 || i >= ttt.Cells {
		panic(fmt.Sprintf("FormatMove: bad cell %d", i))
	}
	return string([]byte{byte('a' + i%ttt.Size), byte('1' + i/ttt.Size)})
}

func ParseMoves(s string) ([]int, error) {
	var out []int
	for _, w := range strings.Fields(s) {
		m, e := ParseMove(w)
		if e != nil {
			return nil, e
		}
		out = append(out, m)
	}
	return out, nil
}

func FormatMoves(ms []int) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = FormatMove(m)
	}
	return strings.Join(bits, " ")
}

func ParseMark(s string) (ttt.Mark, error) {
	switch strings.ToLower(s) {
	case "x":
		return ttt.X, nil
	case "o":
		return ttt.O, nil
	}
	return ttt.Empty, errors.New("bad mark: " + s)
}
