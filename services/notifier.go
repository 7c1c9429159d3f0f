// services/notifier.go
package services

import (
	"log"
	"sync"
	"time"
)

// Notification is what gets pushed to connected clients.
type Notification struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	At          time.Time `json:"at"`
}

// Hub fans unlock notices out to a user's live websocket connections.
// Sends are non-blocking: a slow or dead client drops the message rather
// than stalling the evaluation that produced it.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[chan Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[chan Notification]struct{})}
}

// Subscribe registers a delivery channel for the user and returns it.
func (h *Hub) Subscribe(userID uint) chan Notification {
	ch := make(chan Notification, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Notification]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	return ch
}

func (h *Hub) Unsubscribe(userID uint, ch chan Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[userID]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
	close(ch)
}

// Unlocked implements Notifier.
func (h *Hub) Unlocked(userID uint, u Unlock) {
	log.Printf("🏆 user %d unlocked %q (+%d pts)", userID, u.Name, u.Points)

	n := Notification{
		Type:        "achievement_unlocked",
		Name:        u.Name,
		Description: u.Description,
		Points:      u.Points,
		At:          time.Now(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- n:
		default:
			// Client buffer full; drop instead of blocking the engine.
		}
	}
}
