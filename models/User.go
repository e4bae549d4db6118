package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quiz status values for a user account
const (
	StatusNew    = "new"
	StatusFailed = "failed"
	StatusPassed = "passed"
)

// User represents a community member identified by their Discord account
type User struct {
	ID            string     `gorm:"type:uuid;primary_key" json:"id"`
	DiscordID     string     `gorm:"type:varchar(32);unique;not null;column:discord_id" json:"discord_id"`
	Username      string     `gorm:"type:varchar(100);not null" json:"username"`
	Avatar        string     `gorm:"type:varchar(255)" json:"avatar"`
	Status        string     `gorm:"type:varchar(10);not null;default:'new'" json:"status"`
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at" json:"last_attempt_at"`
	Admin         bool       `gorm:"not null;default:false" json:"admin"`
	Blocked       bool       `gorm:"not null;default:false" json:"blocked"`
	LastConnected *time.Time `gorm:"column:last_connected" json:"last_connected"`
	CreatedAt     time.Time  `json:"created_at"`
	Attempts      []*Attempt `gorm:"foreignKey:UserID" json:"attempts,omitempty"`
}

// BeforeCreate assigns the ID so the same models work on postgres and sqlite
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
