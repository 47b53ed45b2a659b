package logic

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// ConversationLogic handles conversation-related business logic
type ConversationLogic struct {
	convoDAO     ConversationStore
	messageDAO   MessageStore
	characterDAO CharacterStore
}

func NewConversationLogic(
	convoDAO ConversationStore,
	messageDAO MessageStore,
	characterDAO CharacterStore,
) *ConversationLogic {
	return &ConversationLogic{
		convoDAO:     convoDAO,
		messageDAO:   messageDAO,
		characterDAO: characterDAO,
	}
}

// CreateConversation opens a new thread with a character and seeds it with
// the greeting exchange: a hidden user opener (LLM context only) followed by
// the character's stored greeting. Seeding does not touch last_chatted_with,
// so fresh conversations list after active ones.
func (l *ConversationLogic) CreateConversation(userID, characterID uint64, language string) (*models.Conversation, error) {
	character, err := l.characterDAO.GetCharacterByID(characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: character %d", ErrNotFound, characterID)
		}
		return nil, err
	}

	convo, err := l.convoDAO.CreateConversation(userID, characterID, NormalizeLanguage(language))
	if err != nil {
		return nil, err
	}

	if _, err := l.messageDAO.CreateMessage(convo.ID, models.RoleUser, character.Name+"!"); err != nil {
		return nil, err
	}
	if _, err := l.messageDAO.CreateMessage(convo.ID, models.RoleAssistant, character.Greeting); err != nil {
		return nil, err
	}

	if err := l.characterDAO.IncrementChatsCreated(characterID); err != nil {
		log.Warn().Err(err).Uint64("character_id", characterID).Msg("failed to bump chat counter")
	}

	return convo, nil
}

// GetConversation loads a conversation and enforces ownership: an existing
// conversation owned by someone else is Forbidden, not NotFound.
func (l *ConversationLogic) GetConversation(conversationID uuid.UUID, userID uint64) (*models.Conversation, error) {
	convo, err := l.convoDAO.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return nil, err
	}
	if convo.UserID != userID {
		return nil, fmt.Errorf("%w: conversation %s", ErrForbidden, conversationID)
	}
	return convo, nil
}

// GetUserConversations lists a user's conversations, most recently chatted
// first
func (l *ConversationLogic) GetUserConversations(userID uint64) ([]models.Conversation, error) {
	return l.convoDAO.GetConversationsByUser(userID)
}

// GetConversationMessages retrieves a conversation's messages for the
// client, dropping the hidden greeting opener seeded at create time.
func (l *ConversationLogic) GetConversationMessages(conversationID uuid.UUID, userID uint64) ([]models.Message, error) {
	if _, err := l.GetConversation(conversationID, userID); err != nil {
		return nil, err
	}
	messages, err := l.messageDAO.GetMessagesByConversationID(conversationID)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 && messages[0].Role == models.RoleUser {
		messages = messages[1:]
	}
	return messages, nil
}
