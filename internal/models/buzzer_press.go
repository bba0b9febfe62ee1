package models

import "time"

// BuzzerPress is the durable audit record of an accepted press. The live
// round list is kept in memory by the arbiter; these rows exist only so a
// host can review who buzzed after the fact.
type BuzzerPress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MatchID   uint      `gorm:"index" json:"match_id"`
	TeamName  string    `gorm:"size:100;not null" json:"team_name"`
	Timestamp string    `gorm:"size:64;not null" json:"timestamp"`
	Sequence  uint64    `gorm:"not null;index" json:"sequence"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	PressStatusPending      = "pending"
	PressStatusAcknowledged = "acknowledged"
)
