// Package notify pushes toast notifications to connected clients over
// websockets. Engine handlers call Notify fire-and-forget; a slow or
// absent client never blocks a cart or checkout operation.
package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Notification kinds understood by the front end.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

type payload struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	At      int64  `json:"at"`
}

// Client is one websocket subscriber, keyed by its session key.
type Client struct {
	Send chan []byte
	Key  string
}

type broadcastMsg struct {
	Key  string
	Data []byte
}

// Hub fans notifications out to every client registered under a session
// key. All state changes go through the Run loop.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.Key] == nil {
				h.clients[c.Key] = make(map[*Client]bool)
			}
			h.clients[c.Key][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.clients[c.Key]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients[m.Key] {
				select {
				case c.Send <- m.Data:
				default:
					// drop the slow client rather than stall
					close(c.Send)
					delete(h.clients[m.Key], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for key, conns := range h.clients {
				for c := range conns {
					close(c.Send)
				}
				delete(h.clients, key)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Register and Unregister hand the client to the Run loop. Both give up
// once Stop has been called: after that nothing drains the channels, and
// shutdown already closed every client's Send.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify sends a toast to every client on a session key. It never blocks
// and never reports back to the caller.
func (h *Hub) Notify(key, message, kind string) {
	if key == "" {
		return
	}
	data, err := json.Marshal(payload{Message: message, Kind: kind, At: time.Now().Unix()})
	if err != nil {
		log.Println("notify marshal error:", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Key: key, Data: data}:
	default:
		log.Println("notify queue full, dropping toast for", key)
	}
}
