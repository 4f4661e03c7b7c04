package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	e  = entity.Empty
	p1 = entity.P1
	p2 = entity.P2
)

func boardOf(t *testing.T, rows [][]entity.Mark) *entity.Board {
	t.Helper()

	board, err := entity.BoardFromRows(rows)
	require.NoError(t, err)

	return board
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		board  [][]entity.Mark
		row    int
		col    int
		winner entity.Mark
	}{
		{
			name:   "row completed",
			board:  [][]entity.Mark{{p1, p1, p1}, {p2, p2, e}, {e, e, e}},
			row:    0,
			col:    2,
			winner: p1,
		},
		{
			name:   "column completed",
			board:  [][]entity.Mark{{p1, p2, e}, {p1, p2, e}, {e, p2, p1}},
			row:    2,
			col:    1,
			winner: p2,
		},
		{
			name:   "main diagonal completed",
			board:  [][]entity.Mark{{p1, p2, p2}, {e, p1, e}, {e, e, p1}},
			row:    1,
			col:    1,
			winner: p1,
		},
		{
			name:   "anti diagonal completed",
			board:  [][]entity.Mark{{p1, p1, p2}, {e, p2, p1}, {p2, e, e}},
			row:    2,
			col:    0,
			winner: p2,
		},
		{
			name:   "no line through the cell",
			board:  [][]entity.Mark{{p1, p2, e}, {e, p1, e}, {e, e, p2}},
			row:    2,
			col:    2,
			winner: e,
		},
		{
			name:   "empty cell",
			board:  [][]entity.Mark{{p1, p1, p1}, {e, e, e}, {e, e, e}},
			row:    1,
			col:    1,
			winner: e,
		},
		{
			name:   "rectangular board has no diagonals",
			board:  [][]entity.Mark{{p1, p2, e}, {p2, p1, e}},
			row:    1,
			col:    1,
			winner: e,
		},
		{
			name:   "rectangular board row",
			board:  [][]entity.Mark{{p2, p2, p2, p2}, {p1, p1, p1, e}},
			row:    0,
			col:    3,
			winner: p2,
		},
		{
			name:   "rectangular board column",
			board:  [][]entity.Mark{{p1, p2, e}, {p1, p2, e}},
			row:    1,
			col:    0,
			winner: p1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a board where the last move went to (row, col)
			board := boardOf(t, tt.board)

			// When: evaluating the move
			winner := Evaluate(board, tt.row, tt.col)

			// Then: the expected mark is reported
			assert.Equal(t, tt.winner, winner)
		})
	}
}

func TestScanBoard(t *testing.T) {
	t.Run("Finds a line that does not pass through any particular cell", func(t *testing.T) {
		board := boardOf(t, [][]entity.Mark{{e, e, p2}, {p1, p1, p1}, {p2, e, e}})

		assert.Equal(t, p1, ScanBoard(board))
	})

	t.Run("Reports no winner on an unfinished board", func(t *testing.T) {
		board := boardOf(t, [][]entity.Mark{{p1, p2, e}, {e, p1, e}, {e, e, p2}})

		assert.Equal(t, e, ScanBoard(board))
	})

	t.Run("Anti diagonal", func(t *testing.T) {
		board := boardOf(t, [][]entity.Mark{{e, e, p2}, {p1, p2, p1}, {p2, e, p1}})

		assert.Equal(t, p2, ScanBoard(board))
	})

	t.Run("Skips diagonals on rectangular boards", func(t *testing.T) {
		board := boardOf(t, [][]entity.Mark{{p1, p2, p1}, {p2, p1, p2}})

		assert.Equal(t, e, ScanBoard(board))
	})
}

// TestEvaluateMatchesScanBoard_AllGames walks every legal 3x3 game and checks
// that the incremental and full checks agree after each move.
func TestEvaluateMatchesScanBoard_AllGames(t *testing.T) {
	round := newRound(t, 3, 3)
	positions := 0

	var walk func(round *entity.RoundState)
	walk = func(round *entity.RoundState) {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if round.Board.At(r, c) != entity.Empty {
					continue
				}

				next := round.Clone()
				move, err := MakeMove(next, r, c)
				require.NoError(t, err)
				positions++

				incremental := Evaluate(next.Board, move.Row, move.Col)
				full := ScanBoard(next.Board)
				if incremental != full {
					t.Fatalf("mismatch after move %+v: incremental=%v full=%v board=%v",
						move, incremental, full, next.Board.Cells())
				}

				if !next.IsTerminal() {
					walk(next)
				}
			}
		}
	}
	walk(round)

	// 549945 positions are reachable through legal play on 3x3, counting move orders
	assert.Equal(t, 549945, positions)
}

func TestEvaluateMatchesScanBoard_RandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	geometries := [][2]int{{1, 4}, {2, 3}, {3, 2}, {3, 4}, {4, 4}, {5, 5}, {4, 6}}

	for _, geometry := range geometries {
		for game := 0; game < 500; game++ {
			round := newRound(t, geometry[0], geometry[1])

			for !round.IsTerminal() {
				var free [][2]int
				for r := 0; r < geometry[0]; r++ {
					for c := 0; c < geometry[1]; c++ {
						if round.Board.At(r, c) == entity.Empty {
							free = append(free, [2]int{r, c})
						}
					}
				}

				cell := free[rng.Intn(len(free))]
				move, err := MakeMove(round, cell[0], cell[1])
				require.NoError(t, err)

				require.Equal(t, ScanBoard(round.Board), Evaluate(round.Board, move.Row, move.Col),
					"geometry %v board %v", geometry, round.Board.Cells())
			}
		}
	}
}
