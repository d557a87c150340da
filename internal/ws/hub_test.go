package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (have %d)", want, hub.ClientCount())
}

func TestHub_NotifyTargetsOneUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	alice := uuid.New()
	bob := uuid.New()

	ca := NewClient(hub, nil, alice)
	cb := NewClient(hub, nil, bob)
	hub.Register(ca)
	hub.Register(cb)
	waitForCount(t, hub, 2)

	hub.Notify(alice, "request_received", map[string]string{"from": "bob"})

	select {
	case msg := <-ca.send:
		var evt Event
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.Type != "request_received" {
			t.Fatalf("unexpected event type %q", evt.Type)
		}
		if evt.Timestamp == "" {
			t.Fatal("expected timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("alice never received the event")
	}

	select {
	case msg := <-cb.send:
		t.Fatalf("bob received someone else's event: %s", msg)
	default:
	}
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	alice := uuid.New()
	c1 := NewClient(hub, nil, alice)
	c2 := NewClient(hub, nil, alice)
	hub.Register(c1)
	hub.Register(c2)
	waitForCount(t, hub, 2)

	hub.Notify(alice, "session_updated", nil)

	for i, c := range []*Client{c1, c2} {
		select {
		case <-c.send:
		case <-time.After(time.Second):
			t.Fatalf("connection %d never received the event", i)
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	alice := uuid.New()
	c := NewClient(hub, nil, alice)
	hub.Register(c)
	waitForCount(t, hub, 1)

	hub.Unregister(c)
	waitForCount(t, hub, 0)

	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("expected closed channel, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}

	// Notifying a user with no connections is a no-op.
	hub.Notify(alice, "request_resolved", nil)
}
