package models

import (
	"time"

	"gorm.io/gorm"
)

// GamePlayer is the membership edge between a User and a Game. At most one
// row exists per (game, user); leaving sets LeftAt and rejoining clears it
// again, so a single prior membership leaves no extra rows behind.
type GamePlayer struct {
	gorm.Model
	GameID   uint      `gorm:"not null;uniqueIndex:idx_game_players_game_user"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_game_players_game_user"`
	JoinedAt time.Time `gorm:"not null"`
	LeftAt   *time.Time

	Game Game `gorm:"foreignKey:GameID"`
	User User `gorm:"foreignKey:UserID"`
}

// Active reports whether the membership is current (the player has not left).
func (p *GamePlayer) Active() bool {
	return p != nil && p.LeftAt == nil
}
