package dao

import (
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// CharacterDAO handles character-related database operations
type CharacterDAO struct {
	db *gorm.DB
}

func NewCharacterDAO(db *gorm.DB) *CharacterDAO {
	return &CharacterDAO{db: db}
}

// CreateCharacter creates a new character
func (d *CharacterDAO) CreateCharacter(character *models.Character) (*models.Character, error) {
	if err := d.db.Create(character).Error; err != nil {
		return nil, err
	}
	return character, nil
}

// GetCharacterByID retrieves a character by ID
func (d *CharacterDAO) GetCharacterByID(id uint64) (*models.Character, error) {
	var character models.Character
	if err := d.db.First(&character, id).Error; err != nil {
		return nil, err
	}
	return &character, nil
}

// GetPopularCharacters retrieves characters ordered by message volume
func (d *CharacterDAO) GetPopularCharacters(offset, limit int) ([]models.Character, error) {
	var characters []models.Character
	if err := d.db.Order("num_messages DESC").Offset(offset).Limit(limit).Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// GetCharactersByCreator retrieves all characters created by a user
func (d *CharacterDAO) GetCharactersByCreator(creatorID uint64) ([]models.Character, error) {
	var characters []models.Character
	if err := d.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// IncrementChatsCreated bumps the conversation counter for a character
func (d *CharacterDAO) IncrementChatsCreated(id uint64) error {
	return d.db.Model(&models.Character{}).
		Where("id = ?", id).
		Update("num_chats_created", gorm.Expr("num_chats_created + 1")).Error
}

// IncrementMessages bumps the assistant message counter for a character
func (d *CharacterDAO) IncrementMessages(id uint64) error {
	return d.db.Model(&models.Character{}).
		Where("id = ?", id).
		Update("num_messages", gorm.Expr("num_messages + 1")).Error
}

// UpdatePhotoURL updates a character's photo
func (d *CharacterDAO) UpdatePhotoURL(id uint64, photoURL string) error {
	return d.db.Model(&models.Character{}).
		Where("id = ?", id).
		Update("photo_url", photoURL).Error
}
