package dao

import (
	"time"

	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// SessionDAO handles session token storage
type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{db: db}
}

// CreateSession stores an issued token
func (d *SessionDAO) CreateSession(token string, userID uint64, issuedAt time.Time, expiresAt *time.Time) (*models.Session, error) {
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	if err := d.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by token string
func (d *SessionDAO) GetSession(token string) (*models.Session, error) {
	var session models.Session
	if err := d.db.Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession revokes a token
func (d *SessionDAO) DeleteSession(token string) error {
	return d.db.Delete(&models.Session{}, "token = ?", token).Error
}
