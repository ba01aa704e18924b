package domain

// PointValues holds the score awarded for each kind of round outcome
type PointValues struct {
	GuessCorrect int `json:"guessCorrect"`
	VoteReceived int `json:"voteReceived"`
	HostMatch    int `json:"hostMatch"`
}

// GameSettings holds configurable round parameters
type GameSettings struct {
	Theme               string      `json:"theme"`
	MaxVideoDurationSec int         `json:"maxVideoDurationSec"` // 0 means unlimited
	Points              PointValues `json:"points"`
}

// DefaultGameSettings returns the default game settings
func DefaultGameSettings() GameSettings {
	return GameSettings{
		Theme:               "",
		MaxVideoDurationSec: 300,
		Points: PointValues{
			GuessCorrect: 10,
			VoteReceived: 5,
			HostMatch:    5,
		},
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	Theme               *string      `json:"theme,omitempty"`
	MaxVideoDurationSec *int         `json:"maxVideoDurationSec,omitempty"`
	Points              *PointValues `json:"points,omitempty"`
}

// Merge applies a patch on top of the existing settings, shallowly.
func (s *GameSettings) Merge(patch SettingsPatch) {
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.MaxVideoDurationSec != nil {
		s.MaxVideoDurationSec = *patch.MaxVideoDurationSec
	}
	if patch.Points != nil {
		s.Points = *patch.Points
	}
}
