package models

import "gorm.io/gorm"

// UserProfile is an optional 1:1 extension of User, created lazily the
// first time the user asks for it.
type UserProfile struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"size:255"`
	AvatarURL   string `gorm:"size:512"`

	User User `gorm:"foreignKey:UserID"`
}
