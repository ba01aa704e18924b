package domain

// VideoSubmission represents one player's video pick for the active round.
// EndSeconds of 0 means the clip runs until the end of the video.
type VideoSubmission struct {
	PlayerID     string `json:"playerId"`
	VideoID      string `json:"videoId"`
	StartSeconds int    `json:"startSeconds"`
	EndSeconds   int    `json:"endSeconds"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Match is the host's claim that a given child submitted a given video
type Match struct {
	PlayerID string `json:"playerId"`
	VideoID  string `json:"videoId"`
}
