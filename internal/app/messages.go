package app

import "tubeguess/internal/domain"

// Outbound message types. Inbound types live in the ws transport; these are
// here because the session layer constructs them during broadcasts.
const (
	MsgStateUpdate = "state_update"
	MsgPlayerLeft  = "player_left"
	MsgError       = "error"
)

// StateUpdate carries a per-viewer room snapshot
type StateUpdate struct {
	Type  string          `json:"type"`
	State domain.RoomView `json:"state"`
}

// PlayerLeft tells remaining players that someone disconnected
type PlayerLeft struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// ErrorMessage is delivered only to the connection that caused it
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewStateUpdate wraps a projection in its wire envelope
func NewStateUpdate(state domain.RoomView) StateUpdate {
	return StateUpdate{Type: MsgStateUpdate, State: state}
}

// NewPlayerLeft builds a player_left notice
func NewPlayerLeft(playerID string) PlayerLeft {
	return PlayerLeft{Type: MsgPlayerLeft, PlayerID: playerID}
}

// NewErrorMessage builds an error message
func NewErrorMessage(message string) ErrorMessage {
	return ErrorMessage{Type: MsgError, Message: message}
}
