package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// CreateConversation creates a new conversation
func (d *ConversationDAO) CreateConversation(userID, characterID uint64, language string) (*models.Conversation, error) {
	convo := &models.Conversation{
		ID:          uuid.New(),
		UserID:      userID,
		CharacterID: characterID,
		Language:    language,
	}
	if err := d.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// GetConversationByID retrieves a conversation by ID
func (d *ConversationDAO) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.Where("id = ?", id).First(&convo).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// GetConversationsByUser retrieves a user's conversations, most recently
// chatted first; conversations with no chat activity yet sort last by
// creation time.
func (d *ConversationDAO) GetConversationsByUser(userID uint64) ([]models.Conversation, error) {
	var convos []models.Conversation
	if err := d.db.Where("user_id = ?", userID).
		Order("last_chatted_with DESC NULLS LAST").
		Order("created_at DESC").
		Find(&convos).Error; err != nil {
		return nil, err
	}
	return convos, nil
}
