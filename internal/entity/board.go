package entity

import (
	"sort"
	"strings"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
)

// Axis is one of the four line directions a run can follow.
type Axis struct {
	Name string
	DRow int
	DCol int
}

var (
	AxisHorizontal = Axis{Name: "horizontal", DRow: 0, DCol: 1}
	AxisVertical   = Axis{Name: "vertical", DRow: 1, DCol: 0}
	AxisDiagDown   = Axis{Name: "diagonal-down", DRow: 1, DCol: 1}
	AxisDiagUp     = Axis{Name: "diagonal-up", DRow: -1, DCol: 1}

	Axes = [4]Axis{AxisHorizontal, AxisVertical, AxisDiagDown, AxisDiagUp}
)

// Cell is a placed mark, used for board snapshots.
type Cell struct {
	Coord Coord
	Mark  Mark
}

// Board is a sparse record of placed marks. A coordinate is written at most once.
type Board struct {
	cells map[Coord]Mark
}

func NewBoard() *Board {
	return &Board{cells: make(map[Coord]Mark)}
}

// Place - records mark at coord, failing if the cell is taken.
func (that *Board) Place(coord Coord, mark Mark) error {
	if _, ok := that.cells[coord]; ok {
		return apperror.ErrCellOccupied
	}

	that.cells[coord] = mark

	return nil
}

// Get - returns the mark at coord, if any.
func (that *Board) Get(coord Coord) (Mark, bool) {
	mark, ok := that.cells[coord]
	return mark, ok
}

func (that *Board) Len() int {
	return len(that.cells)
}

func (that *Board) Clear() {
	clear(that.cells)
}

// Cells - returns a copy of the placed marks ordered by row, then column.
func (that *Board) Cells() []Cell {
	cells := make([]Cell, 0, len(that.cells))
	for coord, mark := range that.cells {
		cells = append(cells, Cell{Coord: coord, Mark: mark})
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Coord.Row != cells[j].Coord.Row {
			return cells[i].Coord.Row < cells[j].Coord.Row
		}
		return cells[i].Coord.Col < cells[j].Coord.Col
	})

	return cells
}

// Encode - renders the board as "r,c=M;r,c=M", empty for an empty board.
func (that *Board) Encode() string {
	cells := that.Cells()
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		parts = append(parts, cell.Coord.String()+"="+cell.Mark.String())
	}

	return strings.Join(parts, ";")
}

// RunLength - counts identical marks through coord along axis, coord included.
func (that *Board) RunLength(coord Coord, mark Mark, axis Axis, limit int) int {
	return 1 + that.countFrom(coord, mark, axis.DRow, axis.DCol, limit) +
		that.countFrom(coord, mark, -axis.DRow, -axis.DCol, limit)
}

func (that *Board) countFrom(coord Coord, mark Mark, dr, dc, limit int) int {
	count := 0
	current := coord
	for i := 1; limit <= 0 || i < limit; i++ {
		next, ok := current.Neighbor(dr, dc)
		if !ok {
			break
		}

		got, ok := that.cells[next]
		if !ok || got != mark {
			break
		}
		count++
		current = next
	}

	return count
}

// WinningAxis - reports the first axis on which the mark just placed at coord
// completes a run of at least winLength.
func (that *Board) WinningAxis(coord Coord, mark Mark, winLength int) (Axis, bool) {
	for _, axis := range Axes {
		if that.RunLength(coord, mark, axis, winLength) >= winLength {
			return axis, true
		}
	}

	return Axis{}, false
}

// EvaluateWin - reports whether the mark just placed at coord wins.
func (that *Board) EvaluateWin(coord Coord, mark Mark, winLength int) bool {
	_, ok := that.WinningAxis(coord, mark, winLength)
	return ok
}
