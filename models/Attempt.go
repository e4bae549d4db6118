package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Origin values for an attempt
const (
	OriginUser      = "user"
	OriginAdminPass = "admin-manual-pass"
	OriginAdminFail = "admin-manual-fail"
)

// Attempt represents one quiz attempt by a user. Attempts are append-only:
// they are never updated or deleted once written.
type Attempt struct {
	ID          string                   `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string                   `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Score       int                      `gorm:"not null" json:"score"`
	Total       int                      `gorm:"not null" json:"total"`
	Passed      bool                     `gorm:"not null" json:"passed"`
	Answers     datatypes.JSONSlice[int] `gorm:"not null" json:"answers"`
	Origin      string                   `gorm:"type:varchar(20);not null;default:'user'" json:"origin"`
	SubmittedAt time.Time                `gorm:"not null;column:submitted_at" json:"submitted_at"`
	User        *User                    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
