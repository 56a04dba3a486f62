package models

import "gorm.io/gorm"

// MaxMessageLength is the storage cap for chat bodies; longer input is
// silently truncated, not rejected.
const MaxMessageLength = 500

// GameMessage is a chat entry within a game. Rows are append-only and
// immutable once created.
type GameMessage struct {
	gorm.Model
	GameID uint   `gorm:"not null;index"`
	UserID uint   `gorm:"not null;index"`
	Body   string `gorm:"size:500;not null"`

	User User `gorm:"foreignKey:UserID"`
}
