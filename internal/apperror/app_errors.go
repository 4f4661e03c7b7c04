package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrRoundOver        = errors.New("round is already over")
	ErrMatchOver        = errors.New("match is already over")
	ErrInvalidGeometry  = errors.New("board rows and columns must be positive")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
