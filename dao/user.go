package dao

import (
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser creates a new user keyed by its World ID nullifier hash
func (d *UserDAO) CreateUser(worldID, language string) (*models.User, error) {
	user := &models.User{
		WorldID:  worldID,
		Credits:  models.StartingCredits,
		Language: language,
	}
	if err := d.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by primary key
func (d *UserDAO) GetUserByID(id uint64) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByWorldID retrieves a user by World ID nullifier hash
func (d *UserDAO) GetUserByWorldID(worldID string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("world_id = ?", worldID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DebitCredits atomically decrements the balance if it covers amount.
// The conditional single-statement update is what keeps two concurrent
// debits from racing past the balance check.
func (d *UserDAO) DebitCredits(userID uint64, amount int64) (bool, error) {
	res := d.db.Model(&models.User{}).
		Where("id = ? AND credits >= ?", userID, amount).
		Update("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddCredits atomically increments the balance
func (d *UserDAO) AddCredits(userID uint64, amount int64) error {
	return d.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("credits", gorm.Expr("credits + ?", amount)).Error
}
