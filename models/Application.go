package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application types
const (
	ApplicationStaff = "staff"
	ApplicationGang  = "gang"
)

// Application status lifecycle
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application represents a staff or gang application submitted by a user.
// The ID is assigned once at submission and preserved by the store; once
// reviewed only Status and ReviewedAt may change.
type Application struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string         `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Type        string         `gorm:"type:varchar(10);not null" json:"type"`
	Payload     datatypes.JSON `gorm:"not null" json:"payload"`
	Status      string         `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	SubmittedAt time.Time      `gorm:"not null;column:submitted_at" json:"submitted_at"`
	ReviewedAt  *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at"`
	ReviewerID  *string        `gorm:"type:uuid;column:reviewer_id" json:"reviewer_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
