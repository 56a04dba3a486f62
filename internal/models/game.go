package models

import (
	"time"

	"gorm.io/gorm"
)

// GameStatus is the lifecycle state of a game table.
type GameStatus string

const (
	StatusLobby    GameStatus = "lobby"
	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished" // terminal
)

// Game represents a table/lobby. Status only ever moves
// lobby -> active -> finished; the host is fixed at creation.
//
// IsPublic and Status carry no column defaults: gorm omits zero-valued
// fields that have a default tag on insert, which would silently turn
// private games public.
type Game struct {
	gorm.Model
	HostUserID uint       `gorm:"not null;index"`
	Name       string     `gorm:"size:255;not null"`
	IsPublic   bool       `gorm:"not null;index:idx_games_public_status"`
	Status     GameStatus `gorm:"size:20;not null;index:idx_games_public_status"`
	StartedAt  *time.Time
	EndedAt    *time.Time

	Host User `gorm:"foreignKey:HostUserID"`
}
