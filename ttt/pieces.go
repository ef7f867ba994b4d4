package ttt

import "fmt"

type Mark byte

const (
	Empty Mark = 0
	X     Mark = 1
	O     Mark = 2
)

func (m Mark) String() string {
	switch m {
	case X:
		return "x"
	case O:
		return "o"
	case Empty:
		return "empty"
	default:
		panic(fmt.Sprintf("bad mark: %x", int(m)))
	}
}

func (m Mark) Flip() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	case Empty:
		return Empty
	default:
		panic(fmt.Sprintf("bad mark: %x", int(m)))
	}
}

// Valid reports whether m is one of Empty, X or O.
func (m Mark) Valid() bool {
	return m <= O
}
