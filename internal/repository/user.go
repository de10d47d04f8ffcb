package repository

import (
	"account-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email (case-sensitive, as stored)
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithOrganization retrieves a user with organization details
func (r *UserRepository) GetWithOrganization(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Organization").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByOrganization retrieves all users in one tenant, excluding one id,
// newest first. A nil orgID matches users with no organization; null is a
// tenant of its own here, not a wildcard.
func (r *UserRepository) ListByOrganization(orgID *uuid.UUID, excludeID uuid.UUID) ([]models.User, error) {
	var users []models.User

	query := r.db.Model(&models.User{}).Where("id <> ?", excludeID)
	if orgID == nil {
		query = query.Where("organization_id IS NULL")
	} else {
		query = query.Where("organization_id = ?", *orgID)
	}

	err := query.Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
