package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Identity is the verified principal behind a session. Sessions without one
// are anonymous buzzer clients.
type Identity struct {
	UserID   uint
	Username string
}

// Session is one live websocket connection plus its transient state. It is
// created on connect, dropped on disconnect and never persisted.
type Session struct {
	ID string

	mu        sync.Mutex
	conn      *websocket.Conn
	identity  *Identity
	lastPress time.Time
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{ID: uuid.NewString(), conn: conn}
}

func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Session) setIdentity(id *Identity) {
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}

func (s *Session) LastPressAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPress
}

func (s *Session) SetLastPressAt(t time.Time) {
	s.mu.Lock()
	s.lastPress = t
	s.mu.Unlock()
}

// write sends one frame. Gorilla connections allow a single concurrent
// writer, so the session mutex also serializes writes.
func (s *Session) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
	}
}
