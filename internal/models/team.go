package models

type Team struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TeamName    string      `gorm:"size:100;not null" json:"team_name"`
	Description string      `gorm:"size:255;not null" json:"description"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Rounds      []TeamMatch `gorm:"foreignKey:TeamID" json:"rounds,omitempty"`
}
