package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PreviewLimit is the number of characters kept in a conversation's message preview.
const PreviewLimit = 30

// Message represents a message in a conversation. Immutable once persisted;
// ordering is created_at, then id as tie-break.
type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null" json:"conversation_id"`
	Role           string    `gorm:"not null" json:"role"` // "user" for ask, "assistant" for answer
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Preview returns content truncated for the conversation list view: the
// first PreviewLimit characters followed by "..." when longer, the content
// verbatim otherwise.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLimit {
		return content
	}
	return string(runes[:PreviewLimit]) + "..."
}
