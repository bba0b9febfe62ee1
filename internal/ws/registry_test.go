package ws

import (
	"testing"
	"time"
)

func TestRegisterCreatesAnonymousSession(t *testing.T) {
	r := NewRegistry()

	s := r.Register(nil)
	if s.ID == "" {
		t.Fatal("session has empty id")
	}
	if s.Identity() != nil {
		t.Error("new session should be anonymous")
	}
	if !s.LastPressAt().IsZero() {
		t.Error("new session lastPressAt should be zero")
	}
	if r.Count() != 1 {
		t.Errorf("registry count = %d, want 1", r.Count())
	}
}

func TestRegisterAssignsDistinctIDs(t *testing.T) {
	r := NewRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := r.Register(nil)
		if seen[s.ID] {
			t.Fatalf("duplicate session id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestAttachIdentity(t *testing.T) {
	r := NewRegistry()
	s := r.Register(nil)

	r.AttachIdentity(s.ID, 42, "host")

	id := s.Identity()
	if id == nil {
		t.Fatal("identity not attached")
	}
	if id.UserID != 42 || id.Username != "host" {
		t.Errorf("identity = %+v, want {42 host}", id)
	}

	// Unknown session ids are ignored.
	r.AttachIdentity("nope", 1, "ghost")
}

func TestUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	s := r.Register(nil)

	r.Unregister(s.ID)
	r.Unregister(s.ID)

	if r.Count() != 0 {
		t.Errorf("registry count = %d, want 0", r.Count())
	}
	if r.Get(s.ID) != nil {
		t.Error("unregistered session still resolvable")
	}
}

func TestSessionLastPress(t *testing.T) {
	r := NewRegistry()
	s := r.Register(nil)

	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	s.SetLastPressAt(at)
	if !s.LastPressAt().Equal(at) {
		t.Errorf("lastPressAt = %v, want %v", s.LastPressAt(), at)
	}
}
