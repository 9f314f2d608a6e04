package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedGame() *entity.Game {
	game := entity.NewGame()
	game.Start()
	return game
}

func TestMakeTurn(t *testing.T) {
	rules := entity.DefaultRules()

	t.Run("Successful turn toggles the mark", func(t *testing.T) {
		// Given: a started game
		game := newStartedGame()

		// When: X moves
		outcome, err := MakeTurn(game, rules, entity.MarkX, entity.Coord{Row: 0, Col: 0})

		// Then: the mark is placed and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, OutcomeContinue, outcome)
		assert.Equal(t, entity.MarkO, game.Turn)
		mark, ok := game.Board.Get(entity.Coord{})
		assert.True(t, ok)
		assert.Equal(t, entity.MarkX, mark)
	})

	t.Run("Error when game is not started", func(t *testing.T) {
		game := entity.NewGame()

		_, err := MakeTurn(game, rules, entity.MarkX, entity.Coord{})

		require.ErrorIs(t, err, apperror.ErrNotStarted)
		assert.Zero(t, game.Board.Len())
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new game where it's X's turn
		game := newStartedGame()

		// When: O tries to move
		_, err := MakeTurn(game, rules, entity.MarkO, entity.Coord{Row: 1, Col: 1})

		// Then: ErrNotYourTurn and nothing changes
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Zero(t, game.Board.Len())
		assert.Equal(t, entity.MarkX, game.Turn)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X at 0,0 and O to move
		game := newStartedGame()
		_, err := MakeTurn(game, rules, entity.MarkX, entity.Coord{})
		require.NoError(t, err)

		// When: O moves on the same cell
		_, err = MakeTurn(game, rules, entity.MarkO, entity.Coord{})

		// Then: ErrCellOccupied, board and turn unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, 1, game.Board.Len())
		assert.Equal(t, entity.MarkO, game.Turn)
	})

	t.Run("Five in a row wins", func(t *testing.T) {
		// Given: X has 0,0..0,3 and O has moved elsewhere each time
		game := newStartedGame()
		for col := 0; col < 4; col++ {
			_, err := MakeTurn(game, rules, entity.MarkX, entity.Coord{Row: 0, Col: col})
			require.NoError(t, err)
			_, err = MakeTurn(game, rules, entity.MarkO, entity.Coord{Row: 5, Col: col * 2})
			require.NoError(t, err)
		}

		// When: X plays 0,4
		outcome, err := MakeTurn(game, rules, entity.MarkX, entity.Coord{Row: 0, Col: 4})

		// Then: X wins and the game stops
		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, outcome)
		assert.False(t, game.IsOngoing())
		require.NotNil(t, game.LastWinner)
		assert.Equal(t, entity.MarkX, *game.LastWinner)
		assert.Equal(t, entity.MarkX, game.Turn)

		// And: further moves are rejected
		_, err = MakeTurn(game, rules, entity.MarkO, entity.Coord{Row: 9, Col: 9})
		assert.ErrorIs(t, err, apperror.ErrNotStarted)
	})

	t.Run("Reaching the draw limit ends in a draw", func(t *testing.T) {
		// Given: a draw limit of 4 marks
		game := newStartedGame()
		game.LastWinner = nil
		drawRules := entity.Rules{WinLength: entity.DefaultWinLength, DrawLimit: 4}

		marks := []entity.Mark{entity.MarkX, entity.MarkO, entity.MarkX}
		for i, mark := range marks {
			outcome, err := MakeTurn(game, drawRules, mark, entity.Coord{Row: i * 10, Col: 0})
			require.NoError(t, err)
			require.Equal(t, OutcomeContinue, outcome)
		}

		// When: the fourth mark is placed
		outcome, err := MakeTurn(game, drawRules, entity.MarkO, entity.Coord{Row: 40, Col: 0})

		// Then: the game is drawn and no winner is remembered
		require.NoError(t, err)
		assert.Equal(t, OutcomeDraw, outcome)
		assert.True(t, game.IsFinished())
		assert.Nil(t, game.LastWinner)
	})

	t.Run("Win takes precedence over the draw limit", func(t *testing.T) {
		game := newStartedGame()
		tightRules := entity.Rules{WinLength: 2, DrawLimit: 3}

		_, err := MakeTurn(game, tightRules, entity.MarkX, entity.Coord{Row: 0, Col: 0})
		require.NoError(t, err)
		_, err = MakeTurn(game, tightRules, entity.MarkO, entity.Coord{Row: 5, Col: 5})
		require.NoError(t, err)

		outcome, err := MakeTurn(game, tightRules, entity.MarkX, entity.Coord{Row: 0, Col: 1})

		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, outcome)
	})

	t.Run("Zero draw limit never draws", func(t *testing.T) {
		game := newStartedGame()
		noDraw := entity.Rules{WinLength: entity.DefaultWinLength, DrawLimit: 0}

		mark := entity.MarkX
		for i := 0; i < 300; i++ {
			outcome, err := MakeTurn(game, noDraw, mark, entity.Coord{Row: i, Col: i * 3})
			require.NoError(t, err)
			require.Equal(t, OutcomeContinue, outcome)
			mark = mark.Opposite()
		}
	})
}
