package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// watchingRoom returns a room mid-WATCHING with a fixed video order
func watchingRoom(t *testing.T) *Room {
	t.Helper()

	room := threePlayerRoom(t)
	toVideoSelection(t, room)
	submitAll(t, room)
	require.Equal(t, PhaseWatching, room.Phase)

	return room
}

func ownersOf(videos []VideoSubmission) []string {
	owners := make([]string, len(videos))
	for i, v := range videos {
		owners[i] = v.PlayerID
	}
	return owners
}

func TestProjectPlayersAlwaysVisible(t *testing.T) {
	room := watchingRoom(t)

	for _, viewer := range []string{"h", "c1", "c2"} {
		view := Project(room, viewer)
		require.Len(t, view.Players, 3)
		for _, p := range view.Players {
			assert.NotEmpty(t, p.ID)
			assert.NotEmpty(t, p.Name)
		}
	}
}

func TestProjectHidesOwnershipFromChildren(t *testing.T) {
	room := watchingRoom(t)

	hostView := Project(room, "h")
	assert.ElementsMatch(t, []string{"h", "c1", "c2"}, ownersOf(hostView.Videos),
		"the host sees every owner")

	childView := Project(room, "c1")
	require.Len(t, childView.Videos, 3, "redaction never drops entries")
	for i, v := range childView.Videos {
		if room.Videos[i].PlayerID == "c1" {
			assert.Equal(t, "c1", v.PlayerID, "own submission stays attributed")
		} else {
			assert.Empty(t, v.PlayerID)
		}
		assert.Equal(t, room.Videos[i].VideoID, v.VideoID, "order is preserved")
	}
}

func TestProjectHidesNowPlayingOwnerFromChildren(t *testing.T) {
	room := watchingRoom(t)

	assert.Equal(t, room.CurrentVideoPlayerID, Project(room, "h").CurrentVideoPlayerID)
	assert.Empty(t, Project(room, "c1").CurrentVideoPlayerID)
	assert.Equal(t, room.CurrentVideoID, Project(room, "c1").CurrentVideoID,
		"only the owner is hidden, not the video")
}

func TestProjectOwnershipVisibleOutsideActivePhases(t *testing.T) {
	room := watchingRoom(t)
	room.Phase = PhaseResults

	view := Project(room, "c1")
	assert.ElementsMatch(t, []string{"h", "c1", "c2"}, ownersOf(view.Videos))
	assert.Equal(t, room.CurrentVideoPlayerID, view.CurrentVideoPlayerID)
}

func TestProjectGuessesDuringGuessing(t *testing.T) {
	room := watchingRoom(t)
	require.NoError(t, room.StartGuessing("h"))
	require.NoError(t, room.SubmitGuess("c1", "v0"))
	require.NoError(t, room.SubmitGuess("c2", "v1"))

	view := Project(room, "c1")
	assert.Equal(t, "v0", view.Guesses["c1"], "own guess is verbatim")
	assert.Equal(t, GuessedMarker, view.Guesses["c2"], "others collapse to a marker")

	hostView := Project(room, "h")
	assert.Equal(t, GuessedMarker, hostView.Guesses["c1"],
		"even the host only sees progress while guessing runs")

	assert.Nil(t, view.Matches, "matches stay hidden before results")
}

func TestProjectRevealsEverythingInResults(t *testing.T) {
	room := watchingRoom(t)
	require.NoError(t, room.StartGuessing("h"))
	require.NoError(t, room.SubmitGuess("c1", "v0"))
	require.NoError(t, room.SubmitGuess("c2", "v1"))
	require.NoError(t, room.SubmitMatches("h", []Match{
		{PlayerID: "c1", VideoID: "v1"},
		{PlayerID: "c2", VideoID: "v2"},
	}))

	view := Project(room, "c2")
	assert.Equal(t, map[string]string{"c1": "v0", "c2": "v1"}, view.Guesses)
	assert.Equal(t, map[string]string{"c1": "v1", "c2": "v2"}, view.Matches)
}

func TestProjectHidesGuessesBeforeGuessing(t *testing.T) {
	room := watchingRoom(t)

	data, err := json.Marshal(Project(room, "c1"))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "guesses")
	assert.NotContains(t, raw, "matches")
}

// The wire shape must survive a round trip: hidden owners arrive as
// present-but-empty fields, so array indices never shift between phases.
func TestProjectionRoundTrip(t *testing.T) {
	room := watchingRoom(t)

	view := Project(room, "c2")
	data, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded RoomView
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, view, decoded)

	var raw struct {
		Videos []map[string]json.RawMessage `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Videos, len(room.Videos))
	for _, v := range raw.Videos {
		assert.Contains(t, v, "playerId", "redacted ownership is opaque, not omitted")
	}
}

func TestProjectDoesNotMutateRoom(t *testing.T) {
	room := watchingRoom(t)
	before := ownersOf(room.Videos)

	view := Project(room, "c1")
	view.Videos[0].PlayerID = "tampered"
	view.Players[0].Score = 999

	assert.Equal(t, before, ownersOf(room.Videos))
	host, _ := room.Player(room.Players[0].ID)
	assert.Zero(t, host.Score)
}
