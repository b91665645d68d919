package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one subscriber of a room's event feed. The feed is read-only:
// inbound frames are drained only to service pings and close frames.
type Client struct {
	conn    *websocket.Conn
	Message chan *WSMessage
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	RoomID  string `json:"roomId"`

	closeOnce sync.Once
	closed    chan struct{}
	mu        sync.Mutex
}

func NewClient(conn *websocket.Conn, userID, roomID string) *Client {
	return &Client{
		conn:    conn,
		Message: make(chan *WSMessage, 64),
		ID:      uuid.NewString(),
		UserID:  userID,
		RoomID:  roomID,
		closed:  make(chan struct{}),
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		if c.conn != nil {
			c.mu.Lock()
			_ = c.conn.Close()
			c.mu.Unlock()
		}
	})
}

func (c *Client) IsClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Deliver queues msg without blocking and reports whether it was accepted.
func (c *Client) Deliver(msg *WSMessage) bool {
	if c.IsClosed() {
		return false
	}
	select {
	case c.Message <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) ReadPump(core *Core) {
	defer func() {
		core.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				core.logger.Warn("ws read error", zap.String("clientId", c.ID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) WritePump(core *Core) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.Message:
			c.mu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteJSON(msg)
			c.mu.Unlock()
			if err != nil {
				core.logger.Warn("ws write error", zap.String("clientId", c.ID), zap.Error(err))
				return
			}
			core.metrics.IncrementCounter(context.Background(), MessagesSentMetric, "type", msg.Type)

		case <-ticker.C:
			c.mu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}

		case <-c.closed:
			c.mu.Lock()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			c.mu.Unlock()
			return
		}
	}
}
