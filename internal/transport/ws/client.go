package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tubeguess/internal/app"
	"tubeguess/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client is one WebSocket connection. It starts unbound; a successful join
// records the (roomID, playerID) pair here, which is the binding every
// later message is resolved through.
type Client struct {
	conn     *websocket.Conn
	registry *app.Registry
	logger   *slog.Logger

	roomID   string
	playerID string

	send   chan []byte
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewClient creates a client for a freshly upgraded connection
func NewClient(conn *websocket.Conn, registry *app.Registry, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		registry: registry,
		logger:   logger,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
	}
}

// Send implements app.Conn
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerId", c.playerID)
		return nil
	}
}

// Close implements app.Conn
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection. When it ends the
// bound player, if any, is removed from its room for good.
func (c *Client) readPump() {
	defer func() {
		if c.playerID != "" {
			c.registry.RemovePlayer(c.roomID, c.playerID)
		}
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage decodes one inbound message and dispatches it. Malformed
// payloads and unknown types are logged and discarded; the connection
// stays open either way.
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("discarding malformed message", "error", err)
		return
	}

	if msg.Type == MsgJoin {
		c.handleJoin(msg)
		return
	}

	// Every other action needs a bound player.
	if c.playerID == "" {
		c.logger.Debug("dropping message from unbound connection", "type", msg.Type)
		return
	}

	session, ok := c.registry.GetRoom(c.roomID)
	if !ok {
		c.logger.Debug("dropping message for vanished room", "type", msg.Type, "roomId", c.roomID)
		return
	}

	switch msg.Type {
	case MsgUpdateSettings:
		if msg.Settings != nil {
			session.UpdateSettings(c.playerID, *msg.Settings)
		}
	case MsgStartGame:
		session.StartGame(c.playerID)
	case MsgSubmitVideo:
		if msg.Video != nil {
			session.SubmitVideo(c.playerID, *msg.Video)
		}
	case MsgPlayVideo:
		session.PlayVideo(c.playerID, msg.VideoID, msg.OwnerID, msg)
	case MsgPauseVideo, MsgSeekVideo:
		session.Relay(c.playerID, msg)
	case MsgStartGuessing:
		session.StartGuessing(c.playerID)
	case MsgSubmitGuess:
		if msg.Guess != nil {
			session.SubmitGuess(c.playerID, msg.Guess.VideoID)
		}
	case MsgSubmitMatch:
		session.SubmitMatches(c.playerID, msg.Matches)
	case MsgNextRound:
		session.NextRound(c.playerID)
	default:
		c.logger.Debug("dropping unknown message type", "type", msg.Type)
	}
}

// handleJoin binds this connection to a player. An unknown room ID creates
// the room with the joiner as host; joining a room that already left the
// lobby answers an error to this connection only.
func (c *Client) handleJoin(msg ClientMessage) {
	if c.playerID != "" {
		c.logger.Debug("ignoring join from already-bound connection", "playerId", c.playerID)
		return
	}
	if msg.RoomID == "" || msg.PlayerName == "" {
		c.logger.Warn("discarding join without room or name")
		return
	}

	for attempt := 0; attempt < 3; attempt++ {
		session, ok := c.registry.GetRoom(msg.RoomID)
		if !ok {
			created, host, err := c.registry.CreateRoom(msg.RoomID, msg.PlayerName)
			if err != nil {
				// Lost a creation race; join the winner's room instead.
				continue
			}
			c.roomID = msg.RoomID
			c.playerID = host.ID
			created.Bind(host.ID, c)
			return
		}

		playerID, err := session.Join(msg.PlayerName, c)
		if errors.Is(err, domain.ErrRoomNotFound) {
			// The room emptied out between lookup and join; its registry
			// entry is gone, so the next attempt creates a fresh room.
			continue
		}
		if err != nil {
			if errors.Is(err, domain.ErrGameInProgress) {
				c.Send(app.NewErrorMessage("Game has already started"))
			} else {
				c.logger.Debug("join rejected", "roomId", msg.RoomID, "reason", err)
			}
			return
		}

		c.roomID = msg.RoomID
		c.playerID = playerID
		return
	}

	c.logger.Warn("join gave up after repeated room churn", "roomId", msg.RoomID)
}
