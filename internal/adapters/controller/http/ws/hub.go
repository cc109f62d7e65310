package ws

import (
	"sync"

	"github.com/241luca/soccer-manager/pkg/logger"
)

// Message is the envelope pushed to websocket clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans notifications out to connected clients. Every client sits in two
// rooms: org:<id> for organization-wide messages and user:<id> for targeted
// ones.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	logger *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: log,
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	for _, room := range client.rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]bool)
		}
		h.rooms[room][client] = true
	}
	total := len(h.rooms)
	h.mu.Unlock()
	h.logger.Debugf("websocket client connected, %d rooms active", total)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	for _, room := range client.rooms {
		if clients, ok := h.rooms[room]; ok {
			if clients[client] {
				delete(clients, client)
				close(client.send)
			}
			if len(clients) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()
	h.logger.Debug("websocket client disconnected")
}

// ToOrganization pushes a message to every client of the organization room.
func (h *Hub) ToOrganization(organizationID string, payload interface{}) {
	h.toRoom("org:"+organizationID, payload)
}

// ToUser pushes a message to every connection of the user.
func (h *Hub) ToUser(userID string, payload interface{}) {
	h.toRoom("user:"+userID, payload)
}

func (h *Hub) toRoom(room string, payload interface{}) {
	message := Message{Type: "notification", Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		select {
		case client.send <- message:
		default:
			// Slow consumer; drop the message rather than block the hub.
			h.logger.Warnf("dropping websocket message for room %s", room)
		}
	}
}
