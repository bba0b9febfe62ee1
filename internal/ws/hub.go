package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the envelope for every frame on the realtime channel.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Event names carried on the realtime channel.
const (
	EventBuzzerPressed    = "buzzer-pressed"
	EventBuzzersReset     = "buzzers-reset"
	EventScoresUpdated    = "scores-updated"
	EventQuestionAdvanced = "question-advanced"
	EventError            = "error"
)

// Hub fans out messages to every registered session. Delivery is best-effort:
// a failed write drops the connection, nothing is queued or retried. The hub
// mutex makes delivery order match publish-call order.
type Hub struct {
	mu       sync.Mutex
	registry *Registry
}

func NewHub(registry *Registry) *Hub {
	return &Hub{registry: registry}
}

func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.registry.Sessions() {
		if err := s.write(data); err != nil {
			log.Printf("ws: write to session %s failed: %v", s.ID, err)
			h.registry.Unregister(s.ID)
		}
	}
}

// SendTo delivers a message to one session only, used for error events that
// must never be broadcast.
func (h *Hub) SendTo(sessionID string, msg Message) {
	s := h.registry.Get(sessionID)
	if s == nil {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	if err := s.write(data); err != nil {
		log.Printf("ws: write to session %s failed: %v", s.ID, err)
		h.registry.Unregister(s.ID)
	}
}
