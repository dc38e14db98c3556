package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindnest/backend/internal/models"
	"github.com/mindnest/backend/internal/store"
)

type fakeStore struct {
	sent []models.Message
	err  error
}

func (f *fakeStore) Send(_ context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	msg := models.Message{ID: uint(len(f.sent) + 1), SenderID: senderID, ReceiverID: receiverID, Content: content}
	f.sent = append(f.sent, msg)
	return &msg, nil
}

func newTestHub(t *testing.T) (*Hub, *fakeStore) {
	t.Helper()
	fs := &fakeStore{}
	hub := NewHub(fs, zap.NewNop())
	go hub.Run()
	return hub, fs
}

func join(hub *Hub, userID uint) *Client {
	client := &Client{hub: hub, send: make(chan []byte, 8), userID: userID}
	hub.register <- client
	return client
}

func recv(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return Event{}
	}
}

func TestNotifyDeliversToReceiverAndSender(t *testing.T) {
	hub, _ := newTestHub(t)
	sender := join(hub, 5)
	receiver := join(hub, 9)

	hub.Notify(&models.Message{ID: 1, SenderID: 5, ReceiverID: 9, Content: "hello"})

	for _, c := range []*Client{receiver, sender} {
		event := recv(t, c)
		assert.Equal(t, "receiveMessage", event.Type)
		var msg models.Message
		require.NoError(t, json.Unmarshal(event.Data, &msg))
		assert.Equal(t, "hello", msg.Content)
		assert.Equal(t, uint(5), msg.SenderID)
	}
}

func TestNotifyMultipleConnectionsSameUser(t *testing.T) {
	hub, _ := newTestHub(t)
	tab1 := join(hub, 9)
	tab2 := join(hub, 9)

	hub.Notify(&models.Message{SenderID: 5, ReceiverID: 9, Content: "hi"})

	assert.Equal(t, "receiveMessage", recv(t, tab1).Type)
	assert.Equal(t, "receiveMessage", recv(t, tab2).Type)
}

func TestSendMessageEventUsesConnectionIdentity(t *testing.T) {
	hub, fs := newTestHub(t)
	sender := join(hub, 5)
	join(hub, 9)

	// Payload claims a different sender; the connection identity must win.
	raw := []byte(`{"type":"sendMessage","data":{"senderId":77,"receiverId":9,"content":"hello"}}`)
	sender.handleEvent(raw)

	require.Len(t, fs.sent, 1)
	assert.Equal(t, uint(5), fs.sent[0].SenderID)
	assert.Equal(t, uint(9), fs.sent[0].ReceiverID)
	assert.Equal(t, "hello", fs.sent[0].Content)
}

func TestSendMessageEventRejectedNotPushed(t *testing.T) {
	hub, fs := newTestHub(t)
	fs.err = store.ErrNotFound
	sender := join(hub, 5)
	receiver := join(hub, 9)

	sender.handleEvent([]byte(`{"type":"sendMessage","data":{"receiverId":9,"content":"hi"}}`))

	select {
	case <-receiver.send:
		t.Fatal("rejected message must not be pushed")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMalformedFramesIgnored(t *testing.T) {
	hub, fs := newTestHub(t)
	sender := join(hub, 5)

	sender.handleEvent([]byte(`not json`))
	sender.handleEvent([]byte(`{"type":"sendMessage","data":"nope"}`))
	sender.handleEvent([]byte(`{"type":"unknown"}`))

	assert.Empty(t, fs.sent)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub, _ := newTestHub(t)
	client := join(hub, 5)

	hub.unregister <- client

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on unregister")
	}
}
