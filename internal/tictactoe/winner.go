package tictactoe

import "github.com/rocketscienceinc/tictactoe-match/internal/entity"

// Evaluate returns the mark that the move at (lastRow, lastCol) completed a line
// for, or Empty. Only the row, the column and (on square boards) the diagonals
// through that cell are inspected.
func Evaluate(board *entity.Board, lastRow, lastCol int) entity.Mark {
	mark := board.At(lastRow, lastCol)
	if mark == entity.Empty {
		return entity.Empty
	}

	if rowFilled(board, lastRow, mark) || columnFilled(board, lastCol, mark) {
		return mark
	}

	if !board.IsSquare() {
		return entity.Empty
	}

	if lastRow == lastCol && mainDiagonalFilled(board, mark) {
		return mark
	}

	if lastRow+lastCol == board.Columns()-1 && antiDiagonalFilled(board, mark) {
		return mark
	}

	return entity.Empty
}

// ScanBoard checks every line of the board from scratch. It returns the same
// answer as Evaluate for any position reached through legal play.
func ScanBoard(board *entity.Board) entity.Mark {
	for r := 0; r < board.Rows(); r++ {
		if mark := board.At(r, 0); mark != entity.Empty && rowFilled(board, r, mark) {
			return mark
		}
	}

	for c := 0; c < board.Columns(); c++ {
		if mark := board.At(0, c); mark != entity.Empty && columnFilled(board, c, mark) {
			return mark
		}
	}

	if !board.IsSquare() {
		return entity.Empty
	}

	if mark := board.At(0, 0); mark != entity.Empty && mainDiagonalFilled(board, mark) {
		return mark
	}

	last := board.Columns() - 1
	if mark := board.At(0, last); mark != entity.Empty && antiDiagonalFilled(board, mark) {
		return mark
	}

	return entity.Empty
}

func rowFilled(board *entity.Board, row int, mark entity.Mark) bool {
	for c := 0; c < board.Columns(); c++ {
		if board.At(row, c) != mark {
			return false
		}
	}

	return true
}

func columnFilled(board *entity.Board, col int, mark entity.Mark) bool {
	for r := 0; r < board.Rows(); r++ {
		if board.At(r, col) != mark {
			return false
		}
	}

	return true
}

func mainDiagonalFilled(board *entity.Board, mark entity.Mark) bool {
	for i := 0; i < board.Rows(); i++ {
		if board.At(i, i) != mark {
			return false
		}
	}

	return true
}

func antiDiagonalFilled(board *entity.Board, mark entity.Mark) bool {
	last := board.Columns() - 1
	for i := 0; i < board.Rows(); i++ {
		if board.At(i, last-i) != mark {
			return false
		}
	}

	return true
}
