package entity

import (
	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
)

const (
	DefaultWinLength = 5
	DefaultDrawLimit = 200
)

// Rules holds the win threshold and the placed-mark ceiling that ends a game in a draw.
// A DrawLimit of zero disables the draw rule.
type Rules struct {
	WinLength int
	DrawLimit int
}

func DefaultRules() Rules {
	return Rules{WinLength: DefaultWinLength, DrawLimit: DefaultDrawLimit}
}

// Game is the state of the current round on the session board.
type Game struct {
	Board      *Board
	Turn       Mark
	Running    bool
	Finished   bool
	Winner     *Mark
	LastWinner *Mark
}

func NewGame() *Game {
	return &Game{Board: NewBoard(), Turn: MarkX}
}

// Start - clears the board and seeds the first turn with the previous winner.
func (that *Game) Start() {
	that.Board.Clear()

	that.Turn = MarkX
	if that.LastWinner != nil {
		that.Turn = *that.LastWinner
	}

	that.Running = true
	that.Finished = false
	that.Winner = nil
}

// Stop - aborts the current round without recording an outcome.
func (that *Game) Stop() {
	that.Running = false
}

func (that *Game) IsOngoing() bool {
	return that.Running
}

func (that *Game) IsFinished() bool {
	return !that.Running && that.Finished
}

func (that *Game) ConfirmOngoingState() error {
	if !that.Running {
		return apperror.ErrNotStarted
	}
	return nil
}

// FinishWithWinner - ends the round and remembers mark for rematch seeding.
func (that *Game) FinishWithWinner(mark Mark) {
	winner := mark
	that.Winner = &winner
	that.LastWinner = &winner
	that.Running = false
	that.Finished = true
}

// FinishWithDraw - ends the round with no winner; the next round starts with X.
func (that *Game) FinishWithDraw() {
	that.Winner = nil
	that.LastWinner = nil
	that.Running = false
	that.Finished = true
}

func (that *Game) ToggleTurn() {
	that.Turn = that.Turn.Opposite()
}
