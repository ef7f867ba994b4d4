package ai

import "github.com/nelhage/tictactician/ttt"

// CreatesFork reports whether placing owner at move leaves at least
// two lines holding exactly one owner mark and two empty cells.
func CreatesFork(b ttt.Board, move int, owner ttt.Mark) bool {
	b[move] = owner
	threats := 0
	for _, l := range ttt.Lines {
		mine, empty := 0, 0
		for _, c := range l {
			switch b[c] {
			case owner:
				mine++
			case ttt.Empty:
				empty++
			}
		}
		if mine == 1 && empty == 2 {
			threats++
		}
	}
	return threats >= 2
}
