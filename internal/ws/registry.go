package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Registry tracks every live session. It owns the set exclusively; other
// components read it through Sessions and Get.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Register(conn *websocket.Conn) *Session {
	s := newSession(conn)

	r.mu.Lock()
	r.sessions[s.ID] = s
	total := len(r.sessions)
	r.mu.Unlock()

	log.Printf("ws: session %s connected (total: %d)", s.ID, total)
	return s
}

// AttachIdentity marks a session as authenticated. Called at most once, right
// after the handshake, and only when the supplied credential verified.
func (r *Registry) AttachIdentity(sessionID string, userID uint, username string) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	s.setIdentity(&Identity{UserID: userID, Username: username})
	log.Printf("ws: session %s authenticated as %s", sessionID, username)
}

// Unregister removes and closes a session. Idempotent.
func (r *Registry) Unregister(sessionID string) {
	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	if ok {
		delete(r.sessions, sessionID)
	}
	r.mu.Unlock()

	if ok {
		s.close()
		log.Printf("ws: session %s disconnected", sessionID)
	}
}

func (r *Registry) Get(sessionID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID]
}

// Sessions returns a snapshot of the live set for fan-out.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
