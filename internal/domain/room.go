package domain

import (
	"math/rand"
	"strings"
	"time"
)

// Room represents a game room. Players are kept in join order because the
// host role rotates through them; exactly one player is the host at a time
// and it is always the one named by HostID.
type Room struct {
	ID                   string
	Players              []*Player // join order
	Phase                Phase
	Settings             GameSettings
	Videos               []VideoSubmission
	CurrentRound         int
	HostID               string
	CurrentVideoID       string
	CurrentVideoPlayerID string
	Guesses              map[string]string // child playerID -> guessed videoID
	Matches              map[string]string // child playerID -> videoID the host matched to them
	CreatedAt            time.Time
}

// NewRoom creates a room with the given host as its only player
func NewRoom(id string, host *Player) *Room {
	host.IsHost = true
	return &Room{
		ID:           id,
		Players:      []*Player{host},
		Phase:        PhaseLobby,
		Settings:     DefaultGameSettings(),
		Videos:       make([]VideoSubmission, 0),
		CurrentRound: 0,
		HostID:       host.ID,
		Guesses:      make(map[string]string),
		Matches:      make(map[string]string),
		CreatedAt:    time.Now(),
	}
}

// Player returns a player by ID
func (r *Room) Player(playerID string) (*Player, bool) {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// IsHost checks if the given player is the current host
func (r *Room) IsHost(playerID string) bool {
	return r.HostID == playerID
}

// IsMember checks if the given player is in the room
func (r *Room) IsMember(playerID string) bool {
	_, ok := r.Player(playerID)
	return ok
}

// ChildCount returns the number of non-host players
func (r *Room) ChildCount() int {
	return len(r.Players) - 1
}

// AddPlayer adds a player to the room. Joins are only accepted while the
// room is still in the lobby.
func (r *Room) AddPlayer(p *Player) error {
	if r.Phase != PhaseLobby {
		return ErrGameInProgress
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	p.IsHost = false
	r.Players = append(r.Players, p)

	return nil
}

// RemovePlayer removes a player and reports whether the room is now empty.
// If the host left and players remain, the host role moves to the next
// player in join order so HostID never dangles.
func (r *Room) RemovePlayer(playerID string) (empty bool, err error) {
	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, ErrPlayerNotFound
	}

	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	delete(r.Guesses, playerID)
	delete(r.Matches, playerID)

	if len(r.Players) == 0 {
		return true, nil
	}

	if r.HostID == playerID {
		next := r.Players[idx%len(r.Players)]
		next.IsHost = true
		r.HostID = next.ID
		// The new host may have guessed as a child earlier in the round;
		// a host never holds a guess, and a stale entry would satisfy the
		// everyone-has-guessed gate in SubmitMatches.
		delete(r.Guesses, next.ID)
	}

	return false, nil
}

// setPhase moves the room to the target phase, rejecting any move the
// transition table does not allow. Every mutator goes through it, so the
// table is the single source of truth for the phase graph.
func (r *Room) setPhase(target Phase) error {
	if !r.Phase.CanTransitionTo(target) {
		return ErrInvalidPhase
	}
	r.Phase = target
	return nil
}

// StartGame moves the room out of the lobby into the first round
func (r *Room) StartGame(senderID string) error {
	if !r.IsHost(senderID) {
		return ErrNotHost
	}
	if r.Phase != PhaseLobby {
		return ErrInvalidPhase
	}

	if err := r.setPhase(PhaseRoundSettings); err != nil {
		return err
	}
	r.CurrentRound = 1

	return nil
}

// UpdateSettings merges a settings patch into the room. While the room sits
// in ROUND_SETTINGS this also advances to VIDEO_SELECTION; in any other
// phase the merge is the only effect.
func (r *Room) UpdateSettings(senderID string, patch SettingsPatch) error {
	if !r.IsHost(senderID) {
		return ErrNotHost
	}

	r.Settings.Merge(patch)

	if r.Phase == PhaseRoundSettings {
		if err := r.setPhase(PhaseVideoSelection); err != nil {
			return err
		}
	}

	return nil
}

// SubmitVideo records a player's submission for the round, replacing any
// earlier one. Ownership is stamped server-side so a room can never hold
// two submissions for the same player. The moment everyone has submitted,
// the presentation order is shuffled and the room starts WATCHING.
func (r *Room) SubmitVideo(senderID string, video VideoSubmission) error {
	if r.Phase != PhaseVideoSelection {
		return ErrInvalidPhase
	}
	if !r.IsMember(senderID) {
		return ErrPlayerNotFound
	}
	if video.VideoID == "" {
		return ErrEmptySubmission
	}

	video.PlayerID = senderID

	replaced := false
	for i := range r.Videos {
		if r.Videos[i].PlayerID == senderID {
			r.Videos[i] = video
			replaced = true
			break
		}
	}
	if !replaced {
		r.Videos = append(r.Videos, video)
	}

	if len(r.Videos) == len(r.Players) {
		if err := r.setPhase(PhaseWatching); err != nil {
			return err
		}

		rand.Shuffle(len(r.Videos), func(i, j int) {
			r.Videos[i], r.Videos[j] = r.Videos[j], r.Videos[i]
		})

		r.CurrentVideoID = r.Videos[0].VideoID
		r.CurrentVideoPlayerID = r.Videos[0].PlayerID
	}

	return nil
}

// SetCurrentVideo points the room at a different submission during
// playback. It reports whether the authoritative now-playing pointer
// actually changed; an unchanged pointer means the action was a plain
// play command to be relayed instead of broadcast.
func (r *Room) SetCurrentVideo(senderID, videoID, ownerID string) (changed bool, err error) {
	if !r.IsHost(senderID) {
		return false, ErrNotHost
	}

	if ownerID == "" {
		for _, v := range r.Videos {
			if v.VideoID == videoID {
				ownerID = v.PlayerID
				break
			}
		}
	}

	if r.CurrentVideoID != videoID {
		r.CurrentVideoID = videoID
		changed = true
	}
	if ownerID != "" && r.CurrentVideoPlayerID != ownerID {
		r.CurrentVideoPlayerID = ownerID
		changed = true
	}

	return changed, nil
}

// StartGuessing opens the guessing phase
func (r *Room) StartGuessing(senderID string) error {
	if !r.IsHost(senderID) {
		return ErrNotHost
	}
	if r.Phase != PhaseWatching {
		return ErrInvalidPhase
	}

	return r.setPhase(PhaseGuessing)
}

// SubmitGuess records a child's guess at the host's video. Guessing again
// overwrites the earlier guess.
func (r *Room) SubmitGuess(senderID, videoID string) error {
	if r.Phase != PhaseGuessing {
		return ErrInvalidPhase
	}
	if !r.IsMember(senderID) {
		return ErrPlayerNotFound
	}
	if r.IsHost(senderID) {
		return ErrHostCannotGuess
	}

	r.Guesses[senderID] = videoID

	return nil
}

// SubmitMatches records the host's child-to-video matches and closes the
// round. It is rejected until every child has guessed, which also makes
// the scoring run at most once per round.
func (r *Room) SubmitMatches(senderID string, matches []Match) error {
	if !r.IsHost(senderID) {
		return ErrNotHost
	}
	if r.Phase != PhaseGuessing {
		return ErrInvalidPhase
	}
	if len(r.Guesses) < r.ChildCount() {
		return ErrGuessesMissing
	}

	r.Matches = make(map[string]string, len(matches))
	for _, m := range matches {
		// Matches are claims about children; anything else is ignored.
		if m.PlayerID == r.HostID || !r.IsMember(m.PlayerID) {
			continue
		}
		r.Matches[m.PlayerID] = m.VideoID
	}

	deltas := ScoreRound(r.Videos, r.Guesses, r.Matches, r.HostID, r.Settings.Points)
	for playerID, delta := range deltas {
		if p, ok := r.Player(playerID); ok {
			p.Score += delta
		}
	}

	return r.setPhase(PhaseResults)
}

// NextRound rotates the host role to the next player in join order and
// begins a new round, or ends the game once every player has hosted. On
// game over nothing is cleared; the final round stays visible.
func (r *Room) NextRound(senderID string) error {
	if !r.IsHost(senderID) {
		return ErrNotHost
	}
	if r.Phase != PhaseResults {
		return ErrInvalidPhase
	}

	if r.CurrentRound >= len(r.Players) {
		return r.setPhase(PhaseGameOver)
	}

	idx := 0
	for i, p := range r.Players {
		if p.ID == r.HostID {
			idx = i
			break
		}
	}

	if err := r.setPhase(PhaseRoundSettings); err != nil {
		return err
	}

	oldHost := r.Players[idx]
	newHost := r.Players[(idx+1)%len(r.Players)]
	oldHost.IsHost = false
	newHost.IsHost = true
	r.HostID = newHost.ID

	r.CurrentRound++
	r.Videos = make([]VideoSubmission, 0)
	r.Guesses = make(map[string]string)
	r.Matches = make(map[string]string)
	r.CurrentVideoID = ""
	r.CurrentVideoPlayerID = ""

	return nil
}
