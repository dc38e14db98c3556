// Package ws is the realtime delivery channel: one websocket per client,
// grouped by user id. Delivery is best-effort — durability comes from the
// message store, a disconnected recipient catches up over the history pull.
package ws

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/mindnest/backend/internal/models"
)

// MessageSender is the slice of the message store the hub needs to persist
// inbound sendMessage events before fan-out.
type MessageSender interface {
	Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error)
}

// delivery is a payload addressed to every connection of one user.
type delivery struct {
	userID  uint
	payload []byte
}

// Hub owns the connection groups. All group state is touched only by the
// Run goroutine; clients talk to it over the channels.
type Hub struct {
	groups map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	store MessageSender
	log   *zap.Logger
}

func NewHub(store MessageSender, log *zap.Logger) *Hub {
	return &Hub{
		groups:     make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 64),
		store:      store,
		log:        log,
	}
}

// Run processes registration and delivery events until the process exits.
// Start it once from main in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			group, ok := h.groups[client.userID]
			if !ok {
				group = make(map[*Client]bool)
				h.groups[client.userID] = group
			}
			group[client] = true
			h.log.Debug("ws client joined", zap.Uint("userId", client.userID))

		case client := <-h.unregister:
			if group, ok := h.groups[client.userID]; ok {
				if group[client] {
					delete(group, client)
					close(client.send)
					if len(group) == 0 {
						delete(h.groups, client.userID)
					}
				}
			}

		case d := <-h.deliver:
			for client := range h.groups[d.userID] {
				select {
				case client.send <- d.payload:
				default:
					// Slow consumer: drop the connection rather than
					// letting the buffer grow without bound.
					delete(h.groups[d.userID], client)
					close(client.send)
				}
			}
		}
	}
}

// Notify fans a persisted message out to the receiver's connections and
// echoes it to the sender's own, for UI confirmation. Both the HTTP send
// handler and the socket sendMessage path end up here.
func (h *Hub) Notify(msg *models.Message) {
	payload, err := json.Marshal(Event{Type: "receiveMessage", Data: mustJSON(msg)})
	if err != nil {
		h.log.Error("ws marshal failed", zap.Error(err))
		return
	}
	h.push(msg.ReceiverID, payload)
	h.push(msg.SenderID, payload)
}

// push queues a payload for every connection of the given user. Failures are
// silent from the caller's point of view.
func (h *Hub) push(userID uint, payload []byte) {
	select {
	case h.deliver <- delivery{userID: userID, payload: payload}:
	default:
		h.log.Warn("ws delivery queue full, dropping push", zap.Uint("userId", userID))
	}
}
