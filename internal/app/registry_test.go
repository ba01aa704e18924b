package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeguess/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryCreateAndGet(t *testing.T) {
	reg := NewRegistry(testLogger())

	session, host, err := reg.CreateRoom("room1", "Hana")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, host.ID)
	assert.True(t, host.IsHost)

	got, ok := reg.GetRoom("room1")
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = reg.GetRoom("nope")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicateRoom(t *testing.T) {
	reg := NewRegistry(testLogger())

	_, _, err := reg.CreateRoom("room1", "Hana")
	require.NoError(t, err)

	_, _, err = reg.CreateRoom("room1", "Ben")
	assert.ErrorIs(t, err, domain.ErrRoomExists)
	assert.Equal(t, 1, reg.RoomCount())
}

func TestRegistryRemovePlayerDeletesEmptyRoom(t *testing.T) {
	reg := NewRegistry(testLogger())

	session, host, err := reg.CreateRoom("room1", "Hana")
	require.NoError(t, err)
	childID, err := session.Join("Ben", &fakeConn{})
	require.NoError(t, err)

	assert.Equal(t, 2, reg.PlayerCount())

	deleted := reg.RemovePlayer("room1", childID)
	assert.False(t, deleted, "room survives while players remain")
	assert.Equal(t, 1, reg.RoomCount())

	deleted = reg.RemovePlayer("room1", host.ID)
	assert.True(t, deleted, "last player leaving deletes the room")
	assert.Equal(t, 0, reg.RoomCount())

	_, ok := reg.GetRoom("room1")
	assert.False(t, ok)
}

func TestJoinRejectedOnEmptiedSession(t *testing.T) {
	reg := NewRegistry(testLogger())

	session, host, err := reg.CreateRoom("room1", "Hana")
	require.NoError(t, err)
	require.True(t, reg.RemovePlayer("room1", host.ID))

	// A joiner that looked the session up before the last player left
	// still holds this pointer; joining it must fail, not strand the
	// player in a room the registry no longer knows.
	_, err = session.Join("Ben", &fakeConn{})
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.Equal(t, 0, reg.PlayerCount())

	// The same room ID is free again for a fresh room.
	fresh, _, err := reg.CreateRoom("room1", "Ben")
	require.NoError(t, err)
	assert.NotSame(t, session, fresh)
}

func TestRegistryRemovePlayerUnknownRoom(t *testing.T) {
	reg := NewRegistry(testLogger())

	assert.False(t, reg.RemovePlayer("nope", "whoever"))
}

func TestRegistryCounts(t *testing.T) {
	reg := NewRegistry(testLogger())

	s1, _, err := reg.CreateRoom("room1", "Hana")
	require.NoError(t, err)
	_, err = s1.Join("Ben", &fakeConn{})
	require.NoError(t, err)

	_, _, err = reg.CreateRoom("room2", "Mia")
	require.NoError(t, err)

	assert.Equal(t, 2, reg.RoomCount())
	assert.Equal(t, 3, reg.PlayerCount())
}
