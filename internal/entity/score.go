package entity

// Scores is the tally of finished rounds for the current server run.
type Scores struct {
	Wins  map[string]int64 `json:"wins"`
	Draws int64            `json:"draws"`
}

func NewScores() *Scores {
	return &Scores{Wins: make(map[string]int64)}
}
