package logic

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jsreddy3/persona-backend/models"
)

// Store interfaces implemented by the dao package. Logic components receive
// these rather than concrete DAOs so tests can substitute in-memory fakes.

type UserStore interface {
	CreateUser(worldID, language string) (*models.User, error)
	GetUserByID(id uint64) (*models.User, error)
	GetUserByWorldID(worldID string) (*models.User, error)
	DebitCredits(userID uint64, amount int64) (bool, error)
	AddCredits(userID uint64, amount int64) error
}

type SessionStore interface {
	CreateSession(token string, userID uint64, issuedAt time.Time, expiresAt *time.Time) (*models.Session, error)
	GetSession(token string) (*models.Session, error)
	DeleteSession(token string) error
}

type CharacterStore interface {
	CreateCharacter(character *models.Character) (*models.Character, error)
	GetCharacterByID(id uint64) (*models.Character, error)
	GetPopularCharacters(offset, limit int) ([]models.Character, error)
	GetCharactersByCreator(creatorID uint64) ([]models.Character, error)
	IncrementChatsCreated(id uint64) error
	IncrementMessages(id uint64) error
	UpdatePhotoURL(id uint64, photoURL string) error
}

type ConversationStore interface {
	CreateConversation(userID, characterID uint64, language string) (*models.Conversation, error)
	GetConversationByID(id uuid.UUID) (*models.Conversation, error)
	GetConversationsByUser(userID uint64) ([]models.Conversation, error)
}

type MessageStore interface {
	CreateMessage(conversationID uuid.UUID, role, content string) (*models.Message, error)
	AppendMessage(conversationID uuid.UUID, role, content string) (*models.Message, error)
	GetMessagesByConversationID(conversationID uuid.UUID) ([]models.Message, error)
}

// CompletionProvider streams text chunks for a chat completion. The stream
// is finite and cancelled through ctx; onToken is invoked for each chunk in
// arrival order and a non-nil return stops the stream.
type CompletionProvider interface {
	StreamCompletion(ctx context.Context, systemPrompt string, history []models.Message, onToken func(chunk string) error) error
}

// ProofVerifier verifies a World ID proof bundle against the external
// verifier. It reports validity; transport failures are returned as errors.
type ProofVerifier interface {
	Verify(ctx context.Context, nullifierHash, merkleRoot, proof, verificationLevel string) (bool, error)
}
