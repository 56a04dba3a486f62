package models

import "gorm.io/gorm"

// User represents an identity in the system. Users are created on first
// successful magic-link request for an unknown email address.
type User struct {
	gorm.Model
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Name      string `gorm:"size:255"`
	AvatarURL string `gorm:"size:512"`
}

// DisplayName resolves the name shown to other players: name, else email,
// else the given fallback.
func (u *User) DisplayName(fallback string) string {
	if u == nil {
		return fallback
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return fallback
}
