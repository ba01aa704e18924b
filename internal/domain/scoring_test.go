package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPoints = PointValues{
	GuessCorrect: 10,
	VoteReceived: 5,
	HostMatch:    5,
}

func roundVideos() []VideoSubmission {
	return []VideoSubmission{
		{PlayerID: "host", VideoID: "v0"},
		{PlayerID: "c1", VideoID: "v1"},
		{PlayerID: "c2", VideoID: "v2"},
	}
}

func TestScoreRoundMixedGuesses(t *testing.T) {
	// c1 finds the host's video, c2 votes for c1's. The host matches c1
	// wrong but c2 right.
	guesses := map[string]string{
		"c1": "v0",
		"c2": "v1",
	}
	matches := map[string]string{
		"c1": "v2",
		"c2": "v2",
	}

	deltas := ScoreRound(roundVideos(), guesses, matches, "host", testPoints)

	assert.Equal(t, 15, deltas["c1"], "correct guess plus one vote on own video")
	assert.Equal(t, 10, deltas["host"], "one vote received plus one correct match")
	assert.Zero(t, deltas["c2"])
}

func TestScoreRoundSuppressesHostVotesWhenAllGuessedCorrectly(t *testing.T) {
	guesses := map[string]string{
		"c1": "v0",
		"c2": "v0",
	}

	deltas := ScoreRound(roundVideos(), guesses, nil, "host", testPoints)

	assert.Equal(t, 10, deltas["c1"])
	assert.Equal(t, 10, deltas["c2"])
	_, scored := deltas["host"]
	assert.False(t, scored, "a video every child recognized earns the host nothing")
}

func TestScoreRoundHostVotesWhenSomeGuessedWrong(t *testing.T) {
	guesses := map[string]string{
		"c1": "v0",
		"c2": "v2",
	}

	deltas := ScoreRound(roundVideos(), guesses, nil, "host", testPoints)

	assert.Equal(t, 5, deltas["host"], "one vote on the host's video")
	assert.Equal(t, 5, deltas["c2"], "vote on own video still counts")
}

func TestScoreRoundMatchAwards(t *testing.T) {
	matches := map[string]string{
		"c1": "v1",
		"c2": "v1",
	}

	deltas := ScoreRound(roundVideos(), map[string]string{}, matches, "host", testPoints)

	assert.Equal(t, 5, deltas["host"], "only the correct match pays out")
}

func TestScoreRoundDeterministic(t *testing.T) {
	guesses := map[string]string{
		"c1": "v0",
		"c2": "v1",
	}
	matches := map[string]string{
		"c1": "v2",
		"c2": "v2",
	}

	first := ScoreRound(roundVideos(), guesses, matches, "host", testPoints)
	for i := 0; i < 50; i++ {
		again := ScoreRound(roundVideos(), guesses, matches, "host", testPoints)
		require.Equal(t, first, again)
	}
}

func TestScoreRoundWithoutHostVideo(t *testing.T) {
	videos := []VideoSubmission{
		{PlayerID: "c1", VideoID: "v1"},
	}

	deltas := ScoreRound(videos, map[string]string{"c1": "v1"}, nil, "host", testPoints)

	assert.Empty(t, deltas)
}
