package models

import (
	"time"
)

// Character represents a persona definition
type Character struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID       uint64    `gorm:"index;not null" json:"creator_id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Greeting        string    `gorm:"type:text;not null" json:"greeting"` // first assistant message in a new conversation
	Tagline         string    `json:"tagline"`
	PhotoURL        string    `json:"photo_url"`
	Attributes      []string  `gorm:"serializer:json" json:"attributes"`
	NumChatsCreated int64     `gorm:"default:0" json:"num_chats_created"`
	NumMessages     int64     `gorm:"default:0" json:"num_messages"`
	Rating          float64   `gorm:"default:0" json:"rating"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
