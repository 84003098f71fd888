package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInputClosed      = errors.New("input closed")
	ErrNotFound         = errors.New("not found")
)
