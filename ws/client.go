package ws

import (
	"time"

	"collabex_backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one websocket connection. The feed is server to client only;
// incoming frames are read to process control messages and then dropped.
type Client struct {
	UserID string
	ConnID string
	Conn   *websocket.Conn
	Send   <-chan []byte

	hub  *Hub
	done chan struct{}
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	connID, send := hub.Register(userID)
	return &Client{
		UserID: userID,
		ConnID: connID,
		Conn:   conn,
		Send:   send,
		hub:    hub,
		done:   make(chan struct{}),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c.UserID, c.ConnID)
		close(c.done)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "user_id", c.UserID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn("websocket write error", "user_id", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
