package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	// pingInterval must stay under pongTimeout.
	pingInterval = 50 * time.Second
	// readLimit is generous for a listen-only stream; clients send
	// nothing but control frames.
	readLimit = 1024

	sendBuffer = 64
)

// Client is one websocket connection. The event stream is one-way: the
// server pushes, the peer only answers pings.
type Client struct {
	id     string
	userID string
	conn   *websocket.Conn
	hub    *Hub

	outbox chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection for a user.
func NewClient(conn *websocket.Conn, userID string, hub *Hub) *Client {
	return &Client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		hub:    hub,
		outbox: make(chan []byte, sendBuffer),
	}
}

func (c *Client) ID() string     { return c.id }
func (c *Client) UserID() string { return c.userID }

// Send queues a message for the write pump. A full buffer means the peer
// is not draining; the message is dropped and the caller told the client
// is gone.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.outbox <- data:
		return nil
	default:
		return ErrClientClosed
	}
}

// Close shuts the connection down. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.outbox)
	c.mu.Unlock()
	return c.conn.Close()
}

// ReadPump drains the connection until the peer disappears, keeping the
// read deadline fresh off pongs. Run as a goroutine; it unregisters the
// client on exit.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Str("user_id", c.userID).Msg("WebSocket unexpected close")
			}
			return
		}
		// Inbound payloads are ignored; the stream is server-to-client.
	}
}

// WritePump moves queued messages onto the wire and pings on an interval.
// Run as a goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.outbox:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn().Err(err).Str("client_id", c.id).Str("user_id", c.userID).Msg("WebSocket write error")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
