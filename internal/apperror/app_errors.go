package apperror

import "errors"

var (
	ErrNotStarted         = errors.New("game is not started or already finished")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrNotEnoughPlayers   = errors.New("not enough players for a new game")
	ErrServerFull         = errors.New("server is full")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidCommand     = errors.New("invalid command")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrSlotFree           = errors.New("player slot is not occupied")
)
