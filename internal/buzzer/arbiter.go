package buzzer

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/M-Imran22/byte-battle-quize-app/internal/models"
	"github.com/M-Imran22/byte-battle-quize-app/internal/ws"

	"gorm.io/gorm"
)

// Cooldown is the minimum interval between two accepted presses from the
// same session.
const Cooldown = 1000 * time.Millisecond

var (
	ErrInvalidPress  = errors.New("invalid buzzer data")
	ErrTooSoon       = errors.New("please wait before pressing again")
	ErrAlreadyBuzzed = errors.New("team has already buzzed this round")
)

// Press is one accepted buzz within the current round. Sequence is assigned
// by the server in arrival order and is the only ordering that matters;
// Timestamp is whatever the client clock said and is kept for the audit
// trail only.
type Press struct {
	MatchID   uint   `json:"match_id"`
	TeamName  string `json:"team_name"`
	Timestamp string `json:"timestamp"`
	Sequence  uint64 `json:"sequence"`
	Status    string `json:"status"`
}

// Arbiter decides which presses count and in what order. Rounds are scoped
// per match; presses that arrive without a match land in a shared round
// under match key 0. All decisions happen under one mutex, so the sequence
// numbers form a total order over accepted presses.
type Arbiter struct {
	db       *gorm.DB
	cooldown time.Duration
	now      func() time.Time

	mu     sync.Mutex
	seq    uint64
	rounds map[uint][]Press
}

func NewArbiter(db *gorm.DB) *Arbiter {
	return &Arbiter{
		db:       db,
		cooldown: Cooldown,
		now:      time.Now,
		rounds:   make(map[uint][]Press),
	}
}

// Submit validates and records a press from the given session.
//
// The in-memory round is authoritative: the audit row is written in the
// background and a storage failure never rolls back an accepted press.
func (a *Arbiter) Submit(session *ws.Session, matchID uint, teamName, timestamp string) (Press, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" || timestamp == "" {
		return Press{}, ErrInvalidPress
	}

	now := a.now()
	if now.Sub(session.LastPressAt()) < a.cooldown {
		return Press{}, ErrTooSoon
	}

	a.mu.Lock()
	for _, p := range a.rounds[matchID] {
		if p.TeamName == teamName {
			a.mu.Unlock()
			return Press{}, ErrAlreadyBuzzed
		}
	}

	a.seq++
	press := Press{
		MatchID:   matchID,
		TeamName:  teamName,
		Timestamp: timestamp,
		Sequence:  a.seq,
		Status:    models.PressStatusPending,
	}
	a.rounds[matchID] = append(a.rounds[matchID], press)
	a.mu.Unlock()

	session.SetLastPressAt(now)

	go a.logPress(press)
	return press, nil
}

// Reset clears the round for a match. The sequence counter keeps counting so
// the audit order stays total across resets.
func (a *Arbiter) Reset(matchID uint) {
	a.mu.Lock()
	delete(a.rounds, matchID)
	a.mu.Unlock()
	log.Printf("buzzer: round reset for match %d", matchID)
}

// Round returns the accepted presses for a match, first-to-buzz first.
func (a *Arbiter) Round(matchID uint) []Press {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Press, len(a.rounds[matchID]))
	copy(out, a.rounds[matchID])
	return out
}

func (a *Arbiter) logPress(p Press) {
	record := models.BuzzerPress{
		MatchID:   p.MatchID,
		TeamName:  p.TeamName,
		Timestamp: p.Timestamp,
		Sequence:  p.Sequence,
		Status:    p.Status,
	}
	if err := a.db.Create(&record).Error; err != nil {
		log.Printf("buzzer: failed to save press audit record: %v", err)
	}
}
