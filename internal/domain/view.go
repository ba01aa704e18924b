package domain

// GuessedMarker replaces another player's guess in the GUESSING phase, so
// clients can show progress without learning the chosen video.
const GuessedMarker = "guessed"

// PlayerView is the always-visible slice of a player
type PlayerView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
	Score  int    `json:"score"`
}

// RoomView is the per-viewer snapshot of a room sent over the wire.
// Redacted submission owners and the redacted now-playing owner serialize
// as empty strings rather than being omitted, so array lengths and object
// shape never change between phases for the same data.
type RoomView struct {
	ID                   string            `json:"id"`
	Players              []PlayerView      `json:"players"`
	Phase                Phase             `json:"phase"`
	Settings             GameSettings      `json:"settings"`
	Videos               []VideoSubmission `json:"videos"`
	CurrentRound         int               `json:"currentRound"`
	HostID               string            `json:"hostId"`
	CurrentVideoID       string            `json:"currentVideoId"`
	CurrentVideoPlayerID string            `json:"currentVideoPlayerId"`
	Guesses              map[string]string `json:"guesses,omitempty"`
	Matches              map[string]string `json:"matches,omitempty"`
}

// Project builds the snapshot of a room as seen by one viewer. It never
// touches the room itself; every field of the view is constructed fresh,
// and each connected viewer gets its own projection.
func Project(r *Room, viewerID string) RoomView {
	isHost := r.IsHost(viewerID)

	players := make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerView{
			ID:     p.ID,
			Name:   p.Name,
			IsHost: p.IsHost,
			Score:  p.Score,
		})
	}

	videos := make([]VideoSubmission, len(r.Videos))
	copy(videos, r.Videos)
	if r.Phase.Hidden() && !isHost {
		for i := range videos {
			if videos[i].PlayerID != viewerID {
				videos[i].PlayerID = ""
			}
		}
	}

	currentVideoPlayerID := r.CurrentVideoPlayerID
	if r.Phase.Hidden() && !isHost {
		currentVideoPlayerID = ""
	}

	var guesses map[string]string
	switch r.Phase {
	case PhaseResults:
		guesses = make(map[string]string, len(r.Guesses))
		for playerID, videoID := range r.Guesses {
			guesses[playerID] = videoID
		}
	case PhaseGuessing:
		guesses = make(map[string]string, len(r.Guesses))
		for playerID, videoID := range r.Guesses {
			if playerID == viewerID {
				guesses[playerID] = videoID
			} else {
				guesses[playerID] = GuessedMarker
			}
		}
	}

	var matches map[string]string
	if r.Phase == PhaseResults {
		matches = make(map[string]string, len(r.Matches))
		for playerID, videoID := range r.Matches {
			matches[playerID] = videoID
		}
	}

	return RoomView{
		ID:                   r.ID,
		Players:              players,
		Phase:                r.Phase,
		Settings:             r.Settings,
		Videos:               videos,
		CurrentRound:         r.CurrentRound,
		HostID:               r.HostID,
		CurrentVideoID:       r.CurrentVideoID,
		CurrentVideoPlayerID: currentVideoPlayerID,
		Guesses:              guesses,
		Matches:              matches,
	}
}
