package logic

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// In-memory store fakes mirroring the dao package semantics, including the
// atomic conditional debit.

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[uint64]*models.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]*models.User)}
}

func (s *fakeUserStore) CreateUser(worldID, language string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user := &models.User{
		ID:        s.nextID,
		WorldID:   worldID,
		Credits:   models.StartingCredits,
		Language:  language,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) GetUserByID(id uint64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) GetUserByWorldID(worldID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.WorldID == worldID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) DebitCredits(userID uint64, amount int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok || user.Credits < amount {
		return false, nil
	}
	user.Credits -= amount
	return true, nil
}

func (s *fakeUserStore) AddCredits(userID uint64, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Credits += amount
	}
	return nil
}

func (s *fakeUserStore) credits(userID uint64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID].Credits
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Session)}
}

func (s *fakeSessionStore) CreateSession(token string, userID uint64, issuedAt time.Time, expiresAt *time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &models.Session{Token: token, UserID: userID, IssuedAt: issuedAt, ExpiresAt: expiresAt}
	s.sessions[token] = session
	clone := *session
	return &clone, nil
}

func (s *fakeSessionStore) GetSession(token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *fakeSessionStore) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *fakeSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type fakeCharacterStore struct {
	mu         sync.Mutex
	characters map[uint64]*models.Character
	nextID     uint64
}

func newFakeCharacterStore() *fakeCharacterStore {
	return &fakeCharacterStore{characters: make(map[uint64]*models.Character)}
}

func (s *fakeCharacterStore) CreateCharacter(character *models.Character) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	character.ID = s.nextID
	character.CreatedAt = time.Now()
	clone := *character
	s.characters[character.ID] = &clone
	return character, nil
}

func (s *fakeCharacterStore) GetCharacterByID(id uint64) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	character, ok := s.characters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *character
	return &clone, nil
}

func (s *fakeCharacterStore) GetPopularCharacters(offset, limit int) ([]models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Character, 0, len(s.characters))
	for _, c := range s.characters {
		result = append(result, *c)
	}
	return result, nil
}

func (s *fakeCharacterStore) GetCharactersByCreator(creatorID uint64) ([]models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Character
	for _, c := range s.characters {
		if c.CreatorID == creatorID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (s *fakeCharacterStore) IncrementChatsCreated(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.characters[id]; ok {
		c.NumChatsCreated++
	}
	return nil
}

func (s *fakeCharacterStore) IncrementMessages(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.characters[id]; ok {
		c.NumMessages++
	}
	return nil
}

func (s *fakeCharacterStore) UpdatePhotoURL(id uint64, photoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.characters[id]; ok {
		c.PhotoURL = photoURL
	}
	return nil
}

type fakeConversationStore struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*models.Conversation
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{conversations: make(map[uuid.UUID]*models.Conversation)}
}

func (s *fakeConversationStore) CreateConversation(userID, characterID uint64, language string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo := &models.Conversation{
		ID:          uuid.New(),
		UserID:      userID,
		CharacterID: characterID,
		Language:    language,
		CreatedAt:   time.Now(),
	}
	s.conversations[convo.ID] = convo
	clone := *convo
	return &clone, nil
}

func (s *fakeConversationStore) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo, ok := s.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *convo
	return &clone, nil
}

func (s *fakeConversationStore) GetConversationsByUser(userID uint64) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// fakeMessageStore mirrors AppendMessage's transactional denormalized-field
// update into the conversation store.
type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
	nextID   uint64
	convos   *fakeConversationStore
}

func newFakeMessageStore(convos *fakeConversationStore) *fakeMessageStore {
	return &fakeMessageStore{convos: convos}
}

func (s *fakeMessageStore) CreateMessage(conversationID uuid.UUID, role, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(conversationID, role, content), nil
}

func (s *fakeMessageStore) AppendMessage(conversationID uuid.UUID, role, content string) (*models.Message, error) {
	s.mu.Lock()
	msg := s.insert(conversationID, role, content)
	s.mu.Unlock()

	s.convos.mu.Lock()
	if convo, ok := s.convos.conversations[conversationID]; ok {
		now := time.Now()
		convo.LastChattedWith = &now
		convo.MessagePreview = models.Preview(content)
	}
	s.convos.mu.Unlock()
	return msg, nil
}

func (s *fakeMessageStore) insert(conversationID uuid.UUID, role, content string) *models.Message {
	s.nextID++
	msg := models.Message{
		ID:             s.nextID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	s.messages = append(s.messages, msg)
	clone := msg
	return &clone
}

func (s *fakeMessageStore) GetMessagesByConversationID(conversationID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Message
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			result = append(result, m)
		}
	}
	return result, nil
}

// fakeProvider emits configured chunks, then returns err (nil for a normal
// completion).
type fakeProvider struct {
	chunks []string
	err    error

	mu           sync.Mutex
	calls        int
	systemPrompt string
	history      []models.Message
}

func (p *fakeProvider) StreamCompletion(ctx context.Context, systemPrompt string, history []models.Message, onToken func(string) error) error {
	p.mu.Lock()
	p.calls++
	p.systemPrompt = systemPrompt
	p.history = history
	p.mu.Unlock()

	for _, chunk := range p.chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onToken(chunk); err != nil {
			return err
		}
	}
	return p.err
}

type fakeVerifier struct {
	mu    sync.Mutex
	ok    bool
	err   error
	calls int
}

func (v *fakeVerifier) Verify(ctx context.Context, nullifierHash, merkleRoot, proof, verificationLevel string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	return v.ok, v.err
}
