package entity

import "fmt"

// Player is the occupant of a mark slot.
type Player struct {
	ID   string
	Name string
	Mark Mark
}

func (that *Player) IsNamed() bool {
	return that.Name != ""
}

// DisplayName - returns the announced name or a placeholder for unnamed players.
func (that *Player) DisplayName() string {
	if that.Name == "" {
		return "Anonymous"
	}
	return that.Name
}

// DefaultName - name used when CONNECT carries no payload.
func DefaultName(mark Mark) string {
	return fmt.Sprintf("Player_%s", mark)
}
