package repository

import (
	"account-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthTokenRepository handles database operations for single-use auth tokens
type AuthTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository creates a new auth token repository
func NewAuthTokenRepository(db *gorm.DB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

// Create creates a new auth token
func (r *AuthTokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// GetByValue retrieves an unconsumed token by its opaque value and kind.
// Expiry is not filtered here; the caller checks it at redemption time.
func (r *AuthTokenRepository) GetByValue(value string, kind models.TokenKind) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.First(&token, "token = ? AND kind = ?", value, kind).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a token by ID (consumes it)
func (r *AuthTokenRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.AuthToken{}, "id = ?", id).Error
}

// DeleteByUserAndKind removes all tokens of one kind for a user
func (r *AuthTokenRepository) DeleteByUserAndKind(userID uuid.UUID, kind models.TokenKind) error {
	return r.db.Delete(&models.AuthToken{}, "user_id = ? AND kind = ?", userID, kind).Error
}
