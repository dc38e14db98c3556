package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendTimeout    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS layer on the token
	// endpoints; the socket itself is gated by the bearer token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is the wire frame in both directions.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type sendMessagePayload struct {
	ReceiverID uint   `json:"receiverId"`
	Content    string `json:"content"`
}

// Client is one websocket connection bound to an authenticated user. The
// user id is fixed at upgrade time from the verified token; payloads naming
// a sender are ignored.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// ServeWs upgrades the request and registers the connection under the
// authenticated user's delivery group.
func ServeWs(hub *Hub, userID uint, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 32), userID: userID}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("ws read error", zap.Uint("userId", c.userID), zap.Error(err))
			}
			return
		}
		c.handleEvent(raw)
	}
}

func (c *Client) handleEvent(raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		c.hub.log.Debug("ws malformed frame", zap.Uint("userId", c.userID))
		return
	}

	switch event.Type {
	case "join":
		// Kept for client compatibility; the association was already made
		// from the token at upgrade, the payload is not trusted.

	case "sendMessage":
		var payload sendMessagePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			c.hub.log.Debug("ws malformed sendMessage", zap.Uint("userId", c.userID))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		msg, err := c.hub.store.Send(ctx, c.userID, payload.ReceiverID, payload.Content)
		cancel()
		if err != nil {
			c.hub.log.Warn("ws message rejected",
				zap.Uint("senderId", c.userID),
				zap.Uint("receiverId", payload.ReceiverID),
				zap.Error(err))
			return
		}

		c.hub.Notify(msg)

	default:
		c.hub.log.Debug("ws unknown event type", zap.String("type", event.Type))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return b
}
