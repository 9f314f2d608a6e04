package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/infinite-tictactoe/internal/apperror"
)

// Coord is a cell position on the unbounded board.
type Coord struct {
	Row int
	Col int
}

func (that Coord) String() string {
	return strconv.Itoa(that.Row) + "," + strconv.Itoa(that.Col)
}

// Neighbor - returns the adjacent coordinate in direction (dr, dc), false when it lies
// outside the int range.
func (that Coord) Neighbor(dr, dc int) (Coord, bool) {
	row, ok := addInt(that.Row, dr)
	if !ok {
		return Coord{}, false
	}

	col, ok := addInt(that.Col, dc)
	if !ok {
		return Coord{}, false
	}

	return Coord{Row: row, Col: col}, true
}

func addInt(a, d int) (int, bool) {
	sum := a + d
	if (d > 0 && sum < a) || (d < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// ParseCoord - parses the "row,col" wire form.
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidCoordinates, s)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: row %q", apperror.ErrInvalidCoordinates, parts[0])
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: col %q", apperror.ErrInvalidCoordinates, parts[1])
	}

	return Coord{Row: row, Col: col}, nil
}
