package models

import "time"

type Match struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	MatchName            string          `gorm:"size:100;not null" json:"match_name"`
	MatchType            string          `gorm:"size:100;not null" json:"match_type"`
	QuestionCount        int             `gorm:"not null;default:10" json:"question_count"`
	CurrentQuestionIndex int             `gorm:"not null;default:0" json:"current_question_index"`
	Status               string          `gorm:"size:20;not null;default:'pending'" json:"status"`
	UserID               uint            `gorm:"not null;index" json:"user_id"`
	Rounds               []TeamMatch     `gorm:"foreignKey:MatchID" json:"rounds,omitempty"`
	MatchQuestions       []MatchQuestion `gorm:"foreignKey:MatchID" json:"match_questions,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Match status values. Transitions only ever move forward:
// pending -> active -> completed.
const (
	MatchStatusPending   = "pending"
	MatchStatusActive    = "active"
	MatchStatusCompleted = "completed"
)
