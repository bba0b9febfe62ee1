package models

type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	QType         string `gorm:"size:100;not null;index" json:"q_type"`
	Question      string `gorm:"type:text;not null" json:"question"`
	OptionA       string `gorm:"size:255;not null" json:"option_a"`
	OptionB       string `gorm:"size:255;not null" json:"option_b"`
	OptionC       string `gorm:"size:255;not null" json:"option_c"`
	OptionD       string `gorm:"size:255;not null" json:"option_d"`
	CorrectOption string `gorm:"size:10;not null" json:"correct_option"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
}

// MatchTypeAll is the sentinel category meaning "no filter" when scheduling
// questions into a match.
const MatchTypeAll = "All Types"
