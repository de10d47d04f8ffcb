package testutils

import (
	"time"

	"account-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: "Test Organization",
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. The email carries part of
// the UUID so two factory users never collide on the unique index.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "John Doe",
		Email:        "john." + id.String()[:8] + "@test.com",
		Contact:      "+1-555-0123",
		PasswordHash: string(hash),
		Verified:     false,
		Role:         models.RoleUser,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.Role) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithOrganization sets the organization ID for the user
func (f *UserFactory) WithOrganization(orgID uuid.UUID) *models.User {
	user := f.Create()
	user.OrganizationID = &orgID
	return user
}

// Admin creates a verified ADMIN user attached to the given organization
func (f *UserFactory) Admin(orgID *uuid.UUID) *models.User {
	user := f.Create()
	user.Role = models.RoleAdmin
	user.Verified = true
	user.OrganizationID = orgID
	return user
}

// AuthTokenFactory provides methods to create test AuthToken data
type AuthTokenFactory struct{}

// NewAuthTokenFactory creates a new AuthTokenFactory
func NewAuthTokenFactory() *AuthTokenFactory {
	return &AuthTokenFactory{}
}

// Create creates a test AuthToken with default values
func (f *AuthTokenFactory) Create() *models.AuthToken {
	return &models.AuthToken{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:    uuid.New(),
		Token:     uuid.NewString(),
		Kind:      models.TokenKindVerifyEmail,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

// WithUser sets the user ID for the token
func (f *AuthTokenFactory) WithUser(userID uuid.UUID) *models.AuthToken {
	token := f.Create()
	token.UserID = userID
	return token
}

// WithKind sets the token kind
func (f *AuthTokenFactory) WithKind(kind models.TokenKind) *models.AuthToken {
	token := f.Create()
	token.Kind = kind
	return token
}

// Expired creates a token whose expiry is already in the past
func (f *AuthTokenFactory) Expired(userID uuid.UUID, kind models.TokenKind) *models.AuthToken {
	token := f.Create()
	token.UserID = userID
	token.Kind = kind
	token.ExpiresAt = time.Now().Add(-time.Minute)
	return token
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
	User         *UserFactory
	AuthToken    *AuthTokenFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		User:         NewUserFactory(),
		AuthToken:    NewAuthTokenFactory(),
	}
}

// CreateTenant creates an organization with a verified admin attached to it
func (fs *FactorySet) CreateTenant() (*models.Organization, *models.User) {
	org := fs.Organization.Create()
	admin := fs.User.Admin(&org.ID)
	return org, admin
}
