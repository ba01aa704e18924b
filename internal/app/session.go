package app

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"tubeguess/internal/domain"
)

// Conn is a live client connection the session can deliver messages to
type Conn interface {
	Send(message interface{}) error
	Close() error
}

// RoomSession wraps a room with its lock and its connection bindings. The
// mutex serializes every mutation of the room, so each inbound action is
// applied in full before the next one is looked at, and broadcasts only
// ever observe a fully-applied state.
//
// Guard violations (wrong phase, wrong role, unknown sender) are dropped
// without a reply; the client UI is expected to prevent them, but the
// server does not trust it.
type RoomSession struct {
	mu     sync.Mutex
	room   *domain.Room
	conns  map[string]Conn // playerID -> connection
	closed bool            // set when the last player leaves; the session never reopens
	logger *slog.Logger
}

// NewRoomSession creates a session around a room
func NewRoomSession(room *domain.Room, logger *slog.Logger) *RoomSession {
	return &RoomSession{
		room:   room,
		conns:  make(map[string]Conn),
		logger: logger,
	}
}

// RoomID returns the room identifier
func (s *RoomSession) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.ID
}

// PlayerCount returns the number of players in the room
func (s *RoomSession) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.Players)
}

// Bind attaches a connection to an existing player and broadcasts the
// resulting state. Used for the creating host, whose player record is made
// by the registry.
func (s *RoomSession) Bind(playerID string, conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns[playerID] = conn
	s.broadcastLocked()
}

// Join adds a new player bound to the given connection. Rooms only accept
// joins while in the lobby; afterwards the caller gets ErrGameInProgress
// to surface to that one connection.
func (s *RoomSession) Join(playerName string, conn Conn) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A caller may still hold a pointer to a session whose last player
	// already left. Joining it would strand the player in a room the
	// registry no longer knows about.
	if s.closed {
		return "", domain.ErrRoomNotFound
	}

	player := domain.NewPlayer(uuid.New().String(), playerName, false)
	if err := s.room.AddPlayer(player); err != nil {
		return "", err
	}

	s.conns[player.ID] = conn
	s.broadcastLocked()

	return player.ID, nil
}

// RemovePlayer unbinds and removes a player, reporting whether the room is
// now empty. A disconnect mid-round is a normal leave; nothing is rolled
// back and the remaining players continue.
func (s *RoomSession) RemovePlayer(playerID string) (empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, playerID)

	empty, err := s.room.RemovePlayer(playerID)
	if err != nil {
		s.logger.Debug("remove of unknown player ignored", "roomId", s.room.ID, "playerId", playerID)
		return false
	}
	if empty {
		s.closed = true
		return true
	}

	s.sendAllLocked(NewPlayerLeft(playerID))
	s.broadcastLocked()

	return false
}

// StartGame handles the host's start_game action
func (s *RoomSession) StartGame(senderID string) {
	s.apply("start_game", senderID, func() error {
		return s.room.StartGame(senderID)
	})
}

// UpdateSettings handles the host's update_settings action
func (s *RoomSession) UpdateSettings(senderID string, patch domain.SettingsPatch) {
	s.apply("update_settings", senderID, func() error {
		return s.room.UpdateSettings(senderID, patch)
	})
}

// SubmitVideo handles a player's submit_video action
func (s *RoomSession) SubmitVideo(senderID string, video domain.VideoSubmission) {
	s.apply("submit_video", senderID, func() error {
		return s.room.SubmitVideo(senderID, video)
	})
}

// StartGuessing handles the host's start_guessing action
func (s *RoomSession) StartGuessing(senderID string) {
	s.apply("start_guessing", senderID, func() error {
		return s.room.StartGuessing(senderID)
	})
}

// SubmitGuess handles a child's submit_guess action
func (s *RoomSession) SubmitGuess(senderID, videoID string) {
	s.apply("submit_guess", senderID, func() error {
		return s.room.SubmitGuess(senderID, videoID)
	})
}

// SubmitMatches handles the host's submit_match action
func (s *RoomSession) SubmitMatches(senderID string, matches []domain.Match) {
	s.apply("submit_match", senderID, func() error {
		return s.room.SubmitMatches(senderID, matches)
	})
}

// NextRound handles the host's next_round action
func (s *RoomSession) NextRound(senderID string) {
	s.apply("next_round", senderID, func() error {
		return s.room.NextRound(senderID)
	})
}

// PlayVideo handles the host's play_video action. If it moved the
// authoritative now-playing pointer, everyone gets a full state update;
// otherwise the raw command is relayed as-is so the other clients mirror
// the host's playback.
func (s *RoomSession) PlayVideo(senderID, videoID, ownerID string, raw interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.room.SetCurrentVideo(senderID, videoID, ownerID)
	if err != nil {
		s.logger.Debug("play_video rejected", "roomId", s.room.ID, "playerId", senderID, "reason", err)
		return
	}

	if changed {
		s.broadcastLocked()
		return
	}

	s.sendAllLocked(raw)
}

// Relay forwards a host playback command (pause_video, seek_video)
// verbatim to every connection in the room, skipping projection.
func (s *RoomSession) Relay(senderID string, raw interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(senderID) {
		s.logger.Debug("playback relay rejected", "roomId", s.room.ID, "playerId", senderID)
		return
	}

	s.sendAllLocked(raw)
}

// apply runs a room mutation and broadcasts on success. Rejected actions
// change nothing and answer nothing.
func (s *RoomSession) apply(action, senderID string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		s.logger.Debug("action rejected",
			"action", action,
			"roomId", s.room.ID,
			"playerId", senderID,
			"reason", err,
		)
		return
	}

	s.broadcastLocked()
}

// broadcastLocked sends each bound connection its own projection of the
// room. Snapshots are computed per viewer and never shared.
func (s *RoomSession) broadcastLocked() {
	for playerID, conn := range s.conns {
		view := domain.Project(s.room, playerID)
		if err := conn.Send(NewStateUpdate(view)); err != nil {
			s.logger.Debug("state delivery failed", "roomId", s.room.ID, "playerId", playerID, "error", err)
		}
	}
}

// sendAllLocked delivers one message verbatim to every bound connection
func (s *RoomSession) sendAllLocked(message interface{}) {
	for playerID, conn := range s.conns {
		if err := conn.Send(message); err != nil {
			s.logger.Debug("relay delivery failed", "roomId", s.room.ID, "playerId", playerID, "error", err)
		}
	}
}
