package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

var errBadMove = errors.New("usage: move <row> <col>")

const helpText = `commands:
  <row> <col> | move <row> <col>   place your mark (rows and columns start at 0)
  reset                            start a new round
  reset-match                      clear the scores and start over
  show                             print the board
  help                             print this help
  quit                             leave
`

func (that *Server) handleMove(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errBadMove
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return errBadMove
	}

	col, err := strconv.Atoi(args[1])
	if err != nil {
		return errBadMove
	}

	if phase := that.uMatch.Snapshot().Phase; phase != entity.PhaseInRound {
		that.print(decidedText(phase))
		return nil
	}

	if _, err = that.uMatch.SubmitMove(row, col); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleResetRound(_ context.Context, _ []string) error {
	if _, err := that.uMatch.ResetRound(); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleResetMatch(_ context.Context, _ []string) error {
	that.uMatch.ResetMatch()

	return nil
}

func (that *Server) handleShow(_ context.Context, _ []string) error {
	that.print(render(that.uMatch.Snapshot()))

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.print(helpText)

	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

// describe turns engine errors into player-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		return "that cell is off the board"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is already taken"
	case errors.Is(err, apperror.ErrMatchOver):
		return "the match is over, type reset-match to play again"
	case errors.Is(err, apperror.ErrUnknownCommand):
		return fmt.Sprintf("%v, type help", err)
	default:
		return err.Error()
	}
}
