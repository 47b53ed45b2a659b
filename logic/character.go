package logic

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// CharacterStats is the read-side summary for one character
type CharacterStats struct {
	CharacterID     uint64  `json:"character_id"`
	Name            string  `json:"name"`
	NumChatsCreated int64   `json:"num_chats_created"`
	NumMessages     int64   `json:"num_messages"`
	Rating          float64 `json:"rating"`
}

// CharacterLogic handles character-related business logic
type CharacterLogic struct {
	characterDAO CharacterStore
}

func NewCharacterLogic(characterDAO CharacterStore) *CharacterLogic {
	return &CharacterLogic{characterDAO: characterDAO}
}

// CreateCharacter creates a character owned by creatorID
func (l *CharacterLogic) CreateCharacter(creatorID uint64, name, description, greeting, tagline, photoURL string, attributes []string) (*models.Character, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: character name is required", ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: character description is required", ErrValidation)
	}
	if strings.TrimSpace(greeting) == "" {
		return nil, fmt.Errorf("%w: character greeting is required", ErrValidation)
	}
	if attributes == nil {
		attributes = []string{}
	}
	return l.characterDAO.CreateCharacter(&models.Character{
		CreatorID:   creatorID,
		Name:        name,
		Description: description,
		Greeting:    greeting,
		Tagline:     tagline,
		PhotoURL:    photoURL,
		Attributes:  attributes,
	})
}

// GetCharacter retrieves a character by ID
func (l *CharacterLogic) GetCharacter(id uint64) (*models.Character, error) {
	character, err := l.characterDAO.GetCharacterByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: character %d", ErrNotFound, id)
		}
		return nil, err
	}
	return character, nil
}

// GetPopularCharacters pages through characters by message volume
func (l *CharacterLogic) GetPopularCharacters(page, perPage int) ([]models.Character, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return l.characterDAO.GetPopularCharacters((page-1)*perPage, perPage)
}

// GetCreatorCharacters lists characters created by a user
func (l *CharacterLogic) GetCreatorCharacters(creatorID uint64) ([]models.Character, error) {
	return l.characterDAO.GetCharactersByCreator(creatorID)
}

// GetStats returns a character's counters
func (l *CharacterLogic) GetStats(id uint64) (*CharacterStats, error) {
	character, err := l.GetCharacter(id)
	if err != nil {
		return nil, err
	}
	return &CharacterStats{
		CharacterID:     character.ID,
		Name:            character.Name,
		NumChatsCreated: character.NumChatsCreated,
		NumMessages:     character.NumMessages,
		Rating:          character.Rating,
	}, nil
}

// UpdateCharacterPhoto updates a character's photo; only the creator may
// change it.
func (l *CharacterLogic) UpdateCharacterPhoto(id, userID uint64, photoURL string) (*models.Character, error) {
	character, err := l.GetCharacter(id)
	if err != nil {
		return nil, err
	}
	if character.CreatorID != userID {
		return nil, fmt.Errorf("%w: character %d", ErrForbidden, id)
	}
	if err := l.characterDAO.UpdatePhotoURL(id, photoURL); err != nil {
		return nil, err
	}
	character.PhotoURL = photoURL
	return character, nil
}
