package protocol

import (
	"errors"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
)

var errorTexts = []struct {
	err  error
	text string
}{
	{apperror.ErrNotStarted, "game is not started or already finished"},
	{apperror.ErrNotYourTurn, "not your turn"},
	{apperror.ErrCellOccupied, "cell is occupied"},
	{apperror.ErrNotEnoughPlayers, "not enough players for a new game"},
	{apperror.ErrServerFull, "server is full"},
	{apperror.ErrUnknownCommand, "unknown command"},
	{apperror.ErrInvalidCoordinates, "invalid coordinates format"},
	{apperror.ErrInvalidCommand, "invalid command format"},
}

// ErrorFor - maps a rejected request to the ERROR event sent back to the requester.
func ErrorFor(err error) Event {
	for _, known := range errorTexts {
		if errors.Is(err, known.err) {
			return Error(known.text)
		}
	}
	return Error("request failed")
}
