package entity

import "fmt"

// Mark is the content of a board cell: empty or one of the two players.
type Mark int

const (
	Empty Mark = iota
	P1
	P2
)

const (
	DefaultP1Symbol = "X"
	DefaultP2Symbol = "O"
)

// Other returns the opponent of the mark. Empty has no opponent.
func (that Mark) Other() Mark {
	switch that {
	case P1:
		return P2
	case P2:
		return P1
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == P1 || that == P2
}

func (that Mark) String() string {
	switch that {
	case Empty:
		return "empty"
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return fmt.Sprintf("Mark(%d)", int(that))
	}
}

// Symbols maps player marks to display symbols. It is a value type and is
// resolved once when a match is created.
type Symbols struct {
	p1 string
	p2 string
}

// NewSymbols - builds a symbol table, falling back to X / O for blank symbols.
func NewSymbols(p1, p2 string) Symbols {
	if p1 == "" {
		p1 = DefaultP1Symbol
	}
	if p2 == "" {
		p2 = DefaultP2Symbol
	}

	return Symbols{p1: p1, p2: p2}
}

func DefaultSymbols() Symbols {
	return NewSymbols(DefaultP1Symbol, DefaultP2Symbol)
}

// Symbol returns the display symbol for the mark, "" for Empty.
func (that Symbols) Symbol(mark Mark) string {
	switch mark {
	case P1:
		return that.p1
	case P2:
		return that.p2
	default:
		return ""
	}
}
