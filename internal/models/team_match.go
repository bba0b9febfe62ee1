package models

// TeamMatch is one team's participation in one match, carrying its score.
// The frontend calls these "rounds".
type TeamMatch struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	TeamID  uint `gorm:"not null;index" json:"team_id"`
	MatchID uint `gorm:"not null;index" json:"match_id"`
	Score   int  `gorm:"not null;default:0" json:"score"`
	Team    Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
