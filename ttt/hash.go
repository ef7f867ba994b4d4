package ttt

// Key is a base-3 packing of a board, cell 0 in the most significant
// digit. Every board has exactly one key and every key below KeySpace
// decodes to exactly one board.
type Key uint16

// KeySpace is 3^9.
const KeySpace = 19683

func (b Board) Key() Key {
	var k Key
	for _, c := range b {
		k = k*3 + Key(c)
	}
	return k
}

func FromKey(k Key) Board {
	var b Board
	for i := Cells - 1; i >= 0; i-- {
		b[i] = Mark(k % 3)
		k /= 3
	}
	return b
}
