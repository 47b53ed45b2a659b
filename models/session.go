package models

import (
	"time"
)

// Session represents an issued session token. The token string itself is a
// signed JWT; the row makes revocation possible and is checked on every
// request alongside the signature.
type Session struct {
	Token     string     `gorm:"primaryKey" json:"token"`
	UserID    uint64     `gorm:"index;not null" json:"user_id"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil means the session never expires
}

// Expired reports whether the session is past its expiry at time now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
