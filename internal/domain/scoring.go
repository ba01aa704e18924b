package domain

// ScoreRound computes the score deltas for a finished round. It is pure and
// deterministic; callers guarantee it runs at most once per round.
//
// Awards:
//   - each child whose guess names the host's video gets GuessCorrect
//   - each submission owner gets VoteReceived per guess naming their video,
//     except the host's own submission when every child guessed it
//   - the host gets HostMatch per child matched to their actual submission
//
// Whether every child guessed correctly is decided here, once, and nowhere
// else.
func ScoreRound(videos []VideoSubmission, guesses, matches map[string]string, hostID string, points PointValues) map[string]int {
	deltas := make(map[string]int)

	hostVideoID := ""
	ownSubmission := make(map[string]string, len(videos)) // playerID -> videoID
	for _, v := range videos {
		ownSubmission[v.PlayerID] = v.VideoID
		if v.PlayerID == hostID {
			hostVideoID = v.VideoID
		}
	}
	if hostVideoID == "" {
		return deltas
	}

	correctGuessers := 0
	votes := make(map[string]int) // videoID -> number of guesses naming it
	for playerID, videoID := range guesses {
		votes[videoID]++
		if videoID == hostVideoID {
			correctGuessers++
			deltas[playerID] += points.GuessCorrect
		}
	}

	allChildrenCorrect := len(guesses) > 0 && correctGuessers == len(guesses)

	for _, v := range videos {
		n := votes[v.VideoID]
		if n == 0 {
			continue
		}
		// A video every child saw through earns its host nothing.
		if v.PlayerID == hostID && allChildrenCorrect {
			continue
		}
		deltas[v.PlayerID] += n * points.VoteReceived
	}

	for playerID, videoID := range matches {
		if ownSubmission[playerID] == videoID {
			deltas[hostID] += points.HostMatch
		}
	}

	return deltas
}
