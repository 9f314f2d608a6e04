package entity

// Mark is one of the two symbols placed on the board.
type Mark uint8

const (
	MarkX Mark = iota
	MarkO
)

// MarksCount is the number of player slots, one per mark.
const MarksCount = 2

// Marks lists the marks in slot assignment order.
var Marks = [MarksCount]Mark{MarkX, MarkO}

func (that Mark) String() string {
	if that == MarkO {
		return "O"
	}
	return "X"
}

// Opposite - returns the other mark.
func (that Mark) Opposite() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}
