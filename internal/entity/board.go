package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

// Board is a rows x columns grid of marks. Its geometry never changes after creation.
type Board struct {
	rows    int
	columns int
	cells   [][]Mark
}

func NewBoard(rows, columns int) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidGeometry, rows, columns)
	}

	cells := make([][]Mark, rows)
	for r := range cells {
		cells[r] = make([]Mark, columns)
	}

	return &Board{rows: rows, columns: columns, cells: cells}, nil
}

// BoardFromRows - builds a board from literal rows, mostly for tests and fixtures.
// All rows must have the same length.
func BoardFromRows(rows [][]Mark) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, apperror.ErrInvalidGeometry
	}

	board, err := NewBoard(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		if len(row) != board.columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidGeometry, r, len(row), board.columns)
		}
		copy(board.cells[r], row)
	}

	return board, nil
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Columns() int {
	return that.columns
}

// IsSquare reports whether diagonals are meaningful on this board.
func (that *Board) IsSquare() bool {
	return that.rows == that.columns
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.rows && col >= 0 && col < that.columns
}

// At returns the mark at (row, col). Out-of-bounds coordinates read as Empty.
func (that *Board) At(row, col int) Mark {
	if !that.InBounds(row, col) {
		return Empty
	}

	return that.cells[row][col]
}

// SetMark writes a mark without validation. Game code goes through tictactoe.ApplyMove.
func (that *Board) SetMark(row, col int, mark Mark) {
	that.cells[row][col] = mark
}

// IsFull reports whether every cell holds a player mark.
func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// Cells returns a deep copy of the grid.
func (that *Board) Cells() [][]Mark {
	out := make([][]Mark, that.rows)
	for r, row := range that.cells {
		out[r] = append([]Mark(nil), row...)
	}

	return out
}

// Blank returns an empty board with the same geometry.
func (that *Board) Blank() *Board {
	cells := make([][]Mark, that.rows)
	for r := range cells {
		cells[r] = make([]Mark, that.columns)
	}

	return &Board{rows: that.rows, columns: that.columns, cells: cells}
}

func (that *Board) Clone() *Board {
	return &Board{rows: that.rows, columns: that.columns, cells: that.Cells()}
}
