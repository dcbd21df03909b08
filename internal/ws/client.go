package ws

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mkrishnakr62/chatting-backend-app/internal/presence"
)

const (
	writeWait = 10 * time.Second

	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024
)

// Client is one websocket connection tied to an authenticated user.
// It implements presence.Conn; the handle never outlives the
// underlying transport session.
type Client struct {
	id       uuid.UUID
	userID   uuid.UUID
	conn     *websocket.Conn
	send     chan []byte
	registry *presence.Registry

	closeOnce sync.Once
}

func NewClient(registry *presence.Registry, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		id:       uuid.New(),
		userID:   userID,
		conn:     conn,
		send:     make(chan []byte, 256),
		registry: registry,
	}
}

func (c *Client) ID() uuid.UUID {
	return c.id
}

func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// Push enqueues a frame for delivery. It never blocks: when the send
// buffer is full the caller gets ErrClientQueueFull and is expected to
// drop the connection.
func (c *Client) Push(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

// Close tears down the transport. The read pump then unwinds and
// removes the client from the registry.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}

// ReadPump drains inbound frames until the connection dies. Events are
// pushed, never polled, so client frames only service the keepalive;
// everything else is discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Unregister(c.userID, c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error on %s: %v", c.id, err)
			}
			return
		}
	}
}

// WritePump flushes the send buffer to the socket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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
