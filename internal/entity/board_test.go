package entity

import (
	"math"
	"testing"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAll(t *testing.T, board *Board, mark Mark, coords ...Coord) {
	t.Helper()

	for _, coord := range coords {
		require.NoError(t, board.Place(coord, mark))
	}
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark on a free cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X is placed at a far away coordinate
		err := board.Place(Coord{Row: -1_000_000, Col: 42}, MarkX)

		// Then: the cell holds X
		require.NoError(t, err)
		mark, ok := board.Get(Coord{Row: -1_000_000, Col: 42})
		assert.True(t, ok)
		assert.Equal(t, MarkX, mark)
		assert.Equal(t, 1, board.Len())
	})

	t.Run("Never overwrites an occupied cell", func(t *testing.T) {
		// Given: a board with X at 0,0
		board := NewBoard()
		require.NoError(t, board.Place(Coord{}, MarkX))

		// When: O is placed on the same cell
		err := board.Place(Coord{}, MarkO)

		// Then: ErrCellOccupied is returned and X stays
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		mark, _ := board.Get(Coord{})
		assert.Equal(t, MarkX, mark)
		assert.Equal(t, 1, board.Len())
	})

	t.Run("Get has no side effect on empty cells", func(t *testing.T) {
		board := NewBoard()

		_, ok := board.Get(Coord{Row: 3, Col: 3})

		assert.False(t, ok)
		assert.Zero(t, board.Len())
	})
}

func TestBoard_Encode(t *testing.T) {
	t.Run("Empty board encodes to empty string", func(t *testing.T) {
		assert.Equal(t, "", NewBoard().Encode())
	})

	t.Run("Cells are ordered by row then column", func(t *testing.T) {
		// Given: marks placed out of order
		board := NewBoard()
		require.NoError(t, board.Place(Coord{Row: 1, Col: 0}, MarkO))
		require.NoError(t, board.Place(Coord{Row: 0, Col: 2}, MarkX))
		require.NoError(t, board.Place(Coord{Row: -3, Col: 5}, MarkX))

		// When: the board is encoded
		encoded := board.Encode()

		// Then: the snapshot is deterministic
		assert.Equal(t, "-3,5=X;0,2=X;1,0=O", encoded)
	})

	t.Run("Clear empties the board", func(t *testing.T) {
		board := NewBoard()
		require.NoError(t, board.Place(Coord{}, MarkX))

		board.Clear()

		assert.Zero(t, board.Len())
		assert.Equal(t, "", board.Encode())
	})
}

func TestBoard_WinningAxis(t *testing.T) {
	tests := []struct {
		name   string
		cells  []Coord
		placed Coord
		axis   Axis
	}{
		{
			name:   "horizontal",
			cells:  []Coord{{0, 0}, {0, 1}, {0, 3}, {0, 4}},
			placed: Coord{0, 2},
			axis:   AxisHorizontal,
		},
		{
			name:   "vertical",
			cells:  []Coord{{-2, 7}, {-1, 7}, {0, 7}, {1, 7}},
			placed: Coord{2, 7},
			axis:   AxisVertical,
		},
		{
			name:   "diagonal down",
			cells:  []Coord{{1, 1}, {2, 2}, {3, 3}, {4, 4}},
			placed: Coord{0, 0},
			axis:   AxisDiagDown,
		},
		{
			name:   "diagonal up",
			cells:  []Coord{{0, 0}, {-1, 1}, {-3, 3}, {-4, 4}},
			placed: Coord{-2, 2},
			axis:   AxisDiagUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: four X in a line with a gap
			board := NewBoard()
			placeAll(t, board, MarkX, tt.cells...)

			// When: X fills the gap
			require.NoError(t, board.Place(tt.placed, MarkX))

			// Then: the win is found on that axis only
			axis, ok := board.WinningAxis(tt.placed, MarkX, DefaultWinLength)
			require.True(t, ok)
			assert.Equal(t, tt.axis, axis)

			for _, other := range Axes {
				if other == tt.axis {
					continue
				}
				assert.Less(t, board.RunLength(tt.placed, MarkX, other, 0), DefaultWinLength, other.Name)
			}
		})
	}
}

func TestBoard_EvaluateWin(t *testing.T) {
	t.Run("Four in a row does not win", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, MarkX, Coord{0, 0}, Coord{0, 1}, Coord{0, 2}, Coord{0, 3})

		assert.False(t, board.EvaluateWin(Coord{0, 3}, MarkX, DefaultWinLength))
	})

	t.Run("Opponent mark breaks the run", func(t *testing.T) {
		// Given: X X O X X
		board := NewBoard()
		placeAll(t, board, MarkX, Coord{0, 0}, Coord{0, 1}, Coord{0, 3}, Coord{0, 4})
		require.NoError(t, board.Place(Coord{0, 2}, MarkO))

		// When: X extends the right side
		require.NoError(t, board.Place(Coord{0, 5}, MarkX))

		// Then: only three are contiguous
		assert.False(t, board.EvaluateWin(Coord{0, 5}, MarkX, DefaultWinLength))
	})

	t.Run("Longer run than the threshold still wins", func(t *testing.T) {
		// Given: X at 0..2 and 4..6
		board := NewBoard()
		placeAll(t, board, MarkX, Coord{0, 0}, Coord{0, 1}, Coord{0, 2}, Coord{0, 4}, Coord{0, 5}, Coord{0, 6})

		// When: 0,3 joins them into seven
		require.NoError(t, board.Place(Coord{0, 3}, MarkX))

		// Then: it wins
		assert.True(t, board.EvaluateWin(Coord{0, 3}, MarkX, DefaultWinLength))
	})

	t.Run("Other mark's run does not count", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, MarkO, Coord{0, 0}, Coord{0, 1}, Coord{0, 2}, Coord{0, 3})
		require.NoError(t, board.Place(Coord{0, 4}, MarkX))

		assert.False(t, board.EvaluateWin(Coord{0, 4}, MarkX, DefaultWinLength))
	})

	t.Run("Runs do not wrap around the int range", func(t *testing.T) {
		// Given: X at the two highest columns and the three lowest
		board := NewBoard()
		placeAll(t, board, MarkX,
			Coord{0, math.MaxInt - 1}, Coord{0, math.MinInt}, Coord{0, math.MinInt + 1}, Coord{0, math.MinInt + 2})

		// When: X takes the highest column
		require.NoError(t, board.Place(Coord{0, math.MaxInt}, MarkX))

		// Then: the run ends at the edge
		assert.Equal(t, 2, board.RunLength(Coord{0, math.MaxInt}, MarkX, AxisHorizontal, 0))
		assert.False(t, board.EvaluateWin(Coord{0, math.MaxInt}, MarkX, DefaultWinLength))
		assert.False(t, board.EvaluateWin(Coord{0, math.MinInt}, MarkX, DefaultWinLength))
	})

	t.Run("Custom threshold", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, MarkO, Coord{5, 5}, Coord{6, 6})

		assert.True(t, board.EvaluateWin(Coord{6, 6}, MarkO, 2))
		assert.False(t, board.EvaluateWin(Coord{6, 6}, MarkO, 3))
	})
}
