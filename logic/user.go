package logic

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// creditPackages maps purchasable package names to credit amounts
var creditPackages = map[string]int64{
	"small":  100,
	"medium": 300,
	"large":  1000,
}

// UserStats aggregates a user's credits and creator activity
type UserStats struct {
	UserID          uint64           `json:"user_id"`
	Credits         int64            `json:"credits_remaining"`
	TotalCharacters int              `json:"total_characters"`
	TotalMessages   int64            `json:"total_messages"`
	AverageRating   float64          `json:"average_character_rating"`
	Characters      []CharacterStats `json:"characters"`
}

// UserLogic handles user-related business logic
type UserLogic struct {
	userDAO      UserStore
	characterDAO CharacterStore
}

func NewUserLogic(userDAO UserStore, characterDAO CharacterStore) *UserLogic {
	return &UserLogic{userDAO: userDAO, characterDAO: characterDAO}
}

// GetUser retrieves user info
func (l *UserLogic) GetUser(id uint64) (*models.User, error) {
	user, err := l.userDAO.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

// GetUserStats returns credits plus per-character counters for everything
// the user created
func (l *UserLogic) GetUserStats(id uint64) (*UserStats, error) {
	user, err := l.GetUser(id)
	if err != nil {
		return nil, err
	}
	characters, err := l.characterDAO.GetCharactersByCreator(id)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		UserID:          user.ID,
		Credits:         user.Credits,
		TotalCharacters: len(characters),
		Characters:      make([]CharacterStats, 0, len(characters)),
	}
	var totalRating float64
	for _, c := range characters {
		stats.Characters = append(stats.Characters, CharacterStats{
			CharacterID:     c.ID,
			Name:            c.Name,
			NumChatsCreated: c.NumChatsCreated,
			NumMessages:     c.NumMessages,
			Rating:          c.Rating,
		})
		stats.TotalMessages += c.NumMessages
		totalRating += c.Rating
	}
	if len(characters) > 0 {
		stats.AverageRating = totalRating / float64(len(characters))
	}
	return stats, nil
}

// PurchaseCredits tops up the balance with a named package and returns the
// refreshed user. Payment settlement happens upstream; this is the ledger
// side only.
func (l *UserLogic) PurchaseCredits(id uint64, pkg string) (*models.User, error) {
	amount, ok := creditPackages[pkg]
	if !ok {
		return nil, fmt.Errorf("%w: unknown credit package %q", ErrValidation, pkg)
	}
	if err := l.userDAO.AddCredits(id, amount); err != nil {
		return nil, err
	}
	return l.GetUser(id)
}
