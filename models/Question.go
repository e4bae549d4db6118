package models

import "gorm.io/datatypes"

// Question represents one multiple-choice question of the allowlist quiz.
// Ordering by Position defines the positional match with submitted answers.
type Question struct {
	ID            int                         `gorm:"primary_key;autoIncrement" json:"id"`
	Position      int                         `gorm:"not null;uniqueIndex" json:"position"`
	Text          string                      `gorm:"type:varchar(500);not null" json:"text"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectOption int                         `gorm:"not null;column:correct_option" json:"correct_option"`
}

// Valid reports whether the question satisfies the bank invariants:
// at least two options and a correct index inside the option range.
func (q Question) Valid() bool {
	return len(q.Options) >= 2 && q.CorrectOption >= 0 && q.CorrectOption < len(q.Options)
}
