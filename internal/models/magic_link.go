package models

import (
	"time"

	"gorm.io/gorm"
)

// MagicLinkTokenTTL is how long an emailed sign-in link stays valid.
const MagicLinkTokenTTL = 15 * time.Minute

// MagicLinkToken is a one-time emailed sign-in credential. Only the bcrypt
// hash of the secret is stored; the row is consumed on first successful
// verification.
type MagicLinkToken struct {
	gorm.Model
	UserID     uint      `gorm:"not null;index"`
	SecretHash string    `gorm:"size:255;not null"`
	RedirectTo string    `gorm:"size:512"`
	ExpiresAt  time.Time `gorm:"not null"`
	ConsumedAt *time.Time

	User User `gorm:"foreignKey:UserID"`
}

// Usable reports whether the token can still complete a sign-in.
func (t *MagicLinkToken) Usable(now time.Time) bool {
	return t != nil && t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
