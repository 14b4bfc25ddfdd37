package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// UserRef addresses a connected account. Candidate and company ids live
// in different tables, so the role is part of the key.
type UserRef struct {
	Role string // candidate / company
	ID   uint
}

type Client struct {
	ID   string
	User UserRef
	Send chan []byte
}

// Hub fans notification events out to connected websocket clients.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// SendToUser pushes an event to every connection of one account.
func (h *Hub) SendToUser(user UserRef, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling notification: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.User == user {
			select {
			case client.Send <- payload:
			default:
				// slow consumer, drop instead of blocking
			}
		}
	}
}
