package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenKind is the closed set of single-use token types
type TokenKind string

const (
	TokenKindVerifyEmail   TokenKind = "VERIFY_EMAIL"
	TokenKindResetPassword TokenKind = "RESET_PASSWORD"
)

// IsValid checks if the TokenKind is valid
func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindVerifyEmail, TokenKindResetPassword:
		return true
	}
	return false
}

// AuthToken is a single-use, typed, expiring credential authorizing one
// sensitive state transition (email verification or password reset).
// Consumed rows are deleted on redemption; expired rows stay in place and
// are rejected at redemption time.
type AuthToken struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null;size:64"`
	Kind      TokenKind `json:"kind" gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// IsExpired reports whether the token is past its expiry at the given time
func (t *AuthToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TableName returns the table name for AuthToken
func (AuthToken) TableName() string {
	return "auth_tokens"
}
