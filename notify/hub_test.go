package notify

import (
	"encoding/json"
	"testing"
	"time"
)

func recvWithTimeout(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for notification")
		return nil
	}
}

func TestNotifyReachesRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10), Key: "sess-1"}
	hub.Register(client)

	hub.Notify("sess-1", "Added Midnight Velvet to cart!", KindSuccess)

	data := recvWithTimeout(t, client.Send)
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if p.Message != "Added Midnight Velvet to cart!" {
		t.Errorf("got message %q", p.Message)
	}
	if p.Kind != KindSuccess {
		t.Errorf("got kind %q, want %q", p.Kind, KindSuccess)
	}
	if p.At == 0 {
		t.Error("timestamp missing")
	}
}

func TestNotifyScopedToSessionKey(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 10), Key: "sess-1"}
	other := &Client{Send: make(chan []byte, 10), Key: "sess-2"}
	hub.Register(mine)
	hub.Register(other)

	hub.Notify("sess-1", "yours", KindInfo)
	recvWithTimeout(t, mine.Send)

	select {
	case data := <-other.Send:
		t.Fatalf("notification leaked across session keys: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifyEmptyKeyDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10), Key: ""}
	hub.Register(client)

	hub.Notify("", "nobody home", KindInfo)

	select {
	case data := <-client.Send:
		t.Fatalf("empty-key notification delivered: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnregisterAfterStopReturns(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 10), Key: "sess-1"}
	hub.Register(client)
	hub.Stop()

	// shutdown closes the send channel
	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel, got a message")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("send channel never closed on stop")
	}

	// a client disconnecting after stop must not hang its read pump
	done := make(chan struct{})
	go func() {
		hub.Unregister(client)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("unregister blocked after stop")
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10), Key: "sess-1"}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel, got a message")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("send channel never closed")
	}
}
