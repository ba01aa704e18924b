package ws

import "tubeguess/internal/domain"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types. The dispatcher in client.go switches
// exhaustively over these; anything else is logged and dropped.
const (
	MsgJoin           MessageType = "join"
	MsgUpdateSettings MessageType = "update_settings"
	MsgStartGame      MessageType = "start_game"
	MsgSubmitVideo    MessageType = "submit_video"
	MsgPlayVideo      MessageType = "play_video"
	MsgPauseVideo     MessageType = "pause_video"
	MsgSeekVideo      MessageType = "seek_video"
	MsgStartGuessing  MessageType = "start_guessing"
	MsgSubmitGuess    MessageType = "submit_guess"
	MsgSubmitMatch    MessageType = "submit_match"
	MsgNextRound      MessageType = "next_round"
)

// ClientMessage is the inbound message union, discriminated by Type. Only
// the fields belonging to the given type are set; re-marshaling one yields
// the same wire shape, which is what the playback relay depends on.
type ClientMessage struct {
	Type MessageType `json:"type"`

	// join
	RoomID     string `json:"roomId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`

	// update_settings
	Settings *domain.SettingsPatch `json:"settings,omitempty"`

	// submit_video
	Video *domain.VideoSubmission `json:"video,omitempty"`

	// play_video / seek_video
	VideoID string   `json:"videoId,omitempty"`
	OwnerID string   `json:"ownerId,omitempty"`
	Time    *float64 `json:"time,omitempty"`

	// submit_guess
	Guess *GuessPayload `json:"guess,omitempty"`

	// submit_match
	Matches []domain.Match `json:"matches,omitempty"`
}

// GuessPayload is a child's claim about the host's video
type GuessPayload struct {
	VideoID string `json:"videoId"`
}
