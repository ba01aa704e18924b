package app

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"tubeguess/internal/domain"
)

// Registry is the process-wide map of room ID to live room session. Rooms
// are created on first join and deleted when the last player leaves; the
// registry itself lives for the whole process.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*RoomSession
	logger *slog.Logger
}

// NewRegistry creates an empty room registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]*RoomSession),
		logger: logger,
	}
}

// CreateRoom creates a room with the given joiner as host. It fails if the
// room ID is already taken; create-or-fetch is the caller's job.
func (reg *Registry) CreateRoom(roomID, hostName string) (*RoomSession, *domain.Player, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rooms[roomID]; exists {
		return nil, nil, domain.ErrRoomExists
	}

	host := domain.NewPlayer(uuid.New().String(), hostName, true)
	session := NewRoomSession(domain.NewRoom(roomID, host), reg.logger)
	reg.rooms[roomID] = session

	reg.logger.Info("room created", "roomId", roomID, "hostId", host.ID)

	return session, host, nil
}

// GetRoom returns the session for a room ID
func (reg *Registry) GetRoom(roomID string) (*RoomSession, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	session, ok := reg.rooms[roomID]
	return session, ok
}

// RemovePlayer removes a player from a room, deleting the room if it is
// left empty. It reports whether the room was deleted.
//
// The write lock is held across the whole removal: a session only empties
// while its map entry is being deleted, so once it is gone from the map a
// lookup of the same room ID always creates a fresh room.
func (reg *Registry) RemovePlayer(roomID, playerID string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	session, ok := reg.rooms[roomID]
	if !ok {
		return false
	}

	if !session.RemovePlayer(playerID) {
		return false
	}

	delete(reg.rooms, roomID)
	reg.logger.Info("room deleted", "roomId", roomID)

	return true
}

// RoomCount returns the number of active rooms
func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// PlayerCount returns the total number of players across all rooms
func (reg *Registry) PlayerCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	total := 0
	for _, session := range reg.rooms {
		total += session.PlayerCount()
	}
	return total
}
