package domain

// Player represents a player in a room
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
	Score  int    `json:"score"`
}

// NewPlayer creates a new player with the given ID and display name
func NewPlayer(id, name string, isHost bool) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		IsHost: isHost,
		Score:  0,
	}
}
