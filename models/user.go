package models

import (
	"time"
)

// StartingCredits is granted to every user on first verification.
const StartingCredits = 100

// User represents a verified World ID user with a credit balance
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	WorldID   string    `gorm:"uniqueIndex;not null" json:"world_id"` // nullifier hash of the verified proof
	Credits   int64     `gorm:"not null;default:100" json:"credits"`
	Language  string    `gorm:"default:en" json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
