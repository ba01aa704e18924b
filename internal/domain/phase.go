package domain

// Phase represents the current phase of a room
type Phase string

const (
	PhaseLobby          Phase = "LOBBY"           // Waiting for players to join
	PhaseRoundSettings  Phase = "ROUND_SETTINGS"  // Host picks theme and point values
	PhaseVideoSelection Phase = "VIDEO_SELECTION" // Everyone submits a video
	PhaseWatching       Phase = "WATCHING"        // Host plays the submissions
	PhaseGuessing       Phase = "GUESSING"        // Children guess the host's video
	PhaseResults        Phase = "RESULTS"         // Scores revealed
	PhaseGameOver       Phase = "GAME_OVER"       // Every player has hosted once
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:          {PhaseRoundSettings},
		PhaseRoundSettings:  {PhaseVideoSelection},
		PhaseVideoSelection: {PhaseWatching},
		PhaseWatching:       {PhaseGuessing},
		PhaseGuessing:       {PhaseResults},
		PhaseResults:        {PhaseRoundSettings, PhaseGameOver},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}

// Hidden reports whether submission ownership and the now-playing owner
// are redacted from non-host viewers in this phase.
func (p Phase) Hidden() bool {
	return p == PhaseWatching || p == PhaseGuessing
}
