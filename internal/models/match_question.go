package models

// MatchQuestion assigns a question to a slot within a match.
// Consumed is set when the host advances past the question; the question row
// itself stays in the bank so it can be scheduled into other matches.
type MatchQuestion struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	MatchID       uint     `gorm:"not null;index" json:"match_id"`
	QuestionID    uint     `gorm:"not null;index" json:"question_id"`
	QuestionOrder int      `gorm:"not null" json:"question_order"`
	Consumed      bool     `gorm:"not null;default:false" json:"consumed"`
	Question      Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}
