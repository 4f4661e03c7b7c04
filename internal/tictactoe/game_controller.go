package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// MakeMove - applies the current player's move and settles the round: a win or a
// full board ends it, otherwise the turn passes to the other player.
func MakeMove(round *entity.RoundState, row, col int) (entity.AppliedMove, error) {
	move, err := ApplyMove(round, row, col)
	if err != nil {
		return entity.AppliedMove{}, err
	}

	updateRoundStatus(round, move)

	return move, nil
}

// ApplyMove - the only path that writes a mark onto a round's board.
// A rejected move leaves the round untouched.
func ApplyMove(round *entity.RoundState, row, col int) (entity.AppliedMove, error) {
	if err := validateMove(round, row, col); err != nil {
		return entity.AppliedMove{}, fmt.Errorf("invalid move (%d, %d): %w", row, col, err)
	}

	mark := round.CurrentPlayer
	round.Board.SetMark(row, col, mark)

	return entity.AppliedMove{Row: row, Col: col, Mark: mark}, nil
}

// validateMove - checks if the move is valid.
func validateMove(round *entity.RoundState, row, col int) error {
	if round.IsTerminal() {
		return apperror.ErrRoundOver
	}

	if !round.Board.InBounds(row, col) {
		return apperror.ErrOutOfBounds
	}

	if round.Board.At(row, col) != entity.Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateRoundStatus - checks the round status after a move.
func updateRoundStatus(round *entity.RoundState, move entity.AppliedMove) {
	if winner := Evaluate(round.Board, move.Row, move.Col); winner != entity.Empty {
		round.Outcome = entity.OutcomeWin
		round.Winner = winner
		return
	}

	if round.Board.IsFull() {
		round.Outcome = entity.OutcomeTie
		return
	}

	round.CurrentPlayer = move.Mark.Other()
}
