package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents a chat thread between a user and one character.
// LastChattedWith and MessagePreview are denormalized from the message log,
// updated transactionally on every append.
type Conversation struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uint64     `gorm:"index;not null" json:"user_id"`
	CharacterID     uint64     `gorm:"index;not null" json:"character_id"`
	Language        string     `gorm:"not null" json:"language"`
	CreatedAt       time.Time  `json:"created_at"`
	LastChattedWith *time.Time `json:"last_chatted_with,omitempty"`
	MessagePreview  string     `json:"message_preview,omitempty"`
}
