package repository

import (
	"account-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetWithOrganization(id uuid.UUID) (*models.User, error)
	ListByOrganization(orgID *uuid.UUID, excludeID uuid.UUID) ([]models.User, error)
	Update(user *models.User) error
}

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
}

// AuthTokenRepositoryInterface defines the interface for auth token repository operations
type AuthTokenRepositoryInterface interface {
	Create(token *models.AuthToken) error
	GetByValue(value string, kind models.TokenKind) (*models.AuthToken, error)
	Delete(id uuid.UUID) error
	DeleteByUserAndKind(userID uuid.UUID, kind models.TokenKind) error
}
