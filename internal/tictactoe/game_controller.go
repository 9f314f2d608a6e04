package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
)

// Outcome is the result of an accepted move.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWin
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "continue"
	}
}

// MakeTurn - validates and applies a move, then settles the round: a win, a draw once the
// placed-mark ceiling is reached, or a turn change. A rejected move leaves the game untouched.
func MakeTurn(game *entity.Game, rules entity.Rules, mark entity.Mark, coord entity.Coord) (Outcome, error) {
	if err := validateMove(game, mark, coord); err != nil {
		return OutcomeContinue, fmt.Errorf("invalid turn: %w", err)
	}

	if err := game.Board.Place(coord, mark); err != nil {
		return OutcomeContinue, fmt.Errorf("invalid turn: %w", err)
	}

	return updateGameStatus(game, rules, mark, coord), nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, mark entity.Mark, coord entity.Coord) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if _, ok := game.Board.Get(coord); ok {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, rules entity.Rules, mark entity.Mark, coord entity.Coord) Outcome {
	switch {
	case game.Board.EvaluateWin(coord, mark, rules.WinLength):
		game.FinishWithWinner(mark)
		return OutcomeWin
	case isDraw(game.Board, rules):
		game.FinishWithDraw()
		return OutcomeDraw
	default:
		game.ToggleTurn()
		return OutcomeContinue
	}
}

func isDraw(board *entity.Board, rules entity.Rules) bool {
	return rules.DrawLimit > 0 && board.Len() >= rules.DrawLimit
}
