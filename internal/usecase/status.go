package usecase

// SessionStatus is a point-in-time view of the session, safe to hand out.
type SessionStatus struct {
	State      string         `json:"state"`
	Players    []PlayerStatus `json:"players"`
	Running    bool           `json:"running"`
	Turn       string         `json:"turn,omitempty"`
	Moves      int            `json:"moves"`
	LastWinner string         `json:"last_winner,omitempty"`
}

type PlayerStatus struct {
	Mark string `json:"mark"`
	Name string `json:"name,omitempty"`
}
