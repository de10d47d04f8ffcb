package service

import (
	"fmt"
	"strings"
	"time"

	"account-portal-backend/internal/database/models"
	apperrors "account-portal-backend/internal/errors"
	"account-portal-backend/internal/logger"
	"account-portal-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminService handles admin-only user provisioning scoped to the acting
// admin's organization
type AdminService struct {
	userRepo   repository.UserRepositoryInterface
	orgRepo    repository.OrganizationRepositoryInterface
	bcryptCost int
}

// NewAdminService creates a new admin provisioning service
func NewAdminService(userRepo repository.UserRepositoryInterface, orgRepo repository.OrganizationRepositoryInterface, bcryptCost int) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		bcryptCost: bcryptCost,
	}
}

// AddUserRequest represents the data needed to provision a user
type AddUserRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Contact          string `json:"contact"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
	Role             string `json:"role"`
}

// UpdateUserRequest represents the data needed to edit a provisioned user.
// Name, email and contact are applied as given; password only when
// non-blank; role only when it is a valid role value.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AdminUserResponse represents a provisioned user in listings
type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationResponse represents the admin's organization
type OrganizationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// requireAdmin resolves the acting account and enforces the ADMIN role.
// Every provisioning operation goes through this single predicate.
func (s *AdminService) requireAdmin(adminID uuid.UUID) (*models.User, error) {
	admin, err := s.userRepo.GetByID(adminID)
	if err != nil || admin == nil {
		return nil, apperrors.ErrAdminRequired
	}
	if admin.Role != models.RoleAdmin {
		return nil, apperrors.ErrAdminRequired
	}
	return admin, nil
}

// sameTenant reports whether a target account belongs to the admin's
// organization. A nil organization on both sides counts as the same (null)
// tenant.
func sameTenant(admin, target *models.User) bool {
	if admin.OrganizationID == nil && target.OrganizationID == nil {
		return true
	}
	if admin.OrganizationID == nil || target.OrganizationID == nil {
		return false
	}
	return *admin.OrganizationID == *target.OrganizationID
}

// AddUser provisions a pre-verified account in the admin's organization.
// An admin without an organization must supply an organization name; the
// new organization is created and the admin is retroactively attached to
// it — the only flow that mutates an existing account's organization.
func (s *AdminService) AddUser(adminID uuid.UUID, req *AddUserRequest) (string, error) {
	admin, err := s.requireAdmin(adminID)
	if err != nil {
		return "", err
	}

	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return "", apperrors.ErrUserExists
	}

	organizationID := admin.OrganizationID
	if organizationID == nil {
		if strings.TrimSpace(req.OrganizationName) == "" {
			return "", apperrors.NewValidationError("organization_name", "organization name is required")
		}

		org := &models.Organization{Name: req.OrganizationName}
		if err := s.orgRepo.Create(org); err != nil {
			return "", fmt.Errorf("failed to create organization: %w", err)
		}

		organizationID = &org.ID
		admin.OrganizationID = organizationID
		if err := s.userRepo.Update(admin); err != nil {
			return "", fmt.Errorf("failed to attach admin to organization: %w", err)
		}
		logger.WithAccount(admin.Email).WithField("organization", org.Name).Info("organization created, admin attached")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Anything other than a valid role value is coerced to USER, never rejected
	role := models.Role(req.Role)
	if !role.IsValid() {
		role = models.RoleUser
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Contact:        req.Contact,
		PasswordHash:   string(hash),
		Verified:       true,
		Role:           role,
		OrganizationID: organizationID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithAccount(admin.Email).WithField("user", user.Email).Info("user provisioned")
	return "User added successfully", nil
}

// GetAdminOrganization returns the admin's organization, or nil when none
// has been created yet (the caller must supply a name on the next AddUser).
func (s *AdminService) GetAdminOrganization(adminID uuid.UUID) (*OrganizationResponse, error) {
	admin, err := s.userRepo.GetWithOrganization(adminID)
	if err != nil || admin == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if admin.Organization == nil {
		return nil, nil
	}

	return &OrganizationResponse{
		ID:   admin.Organization.ID,
		Name: admin.Organization.Name,
	}, nil
}

// GetUsers lists all accounts in the admin's organization, excluding the
// admin, newest first. An admin with no organization sees the accounts that
// also have none.
func (s *AdminService) GetUsers(adminID uuid.UUID) ([]AdminUserResponse, error) {
	admin, err := s.requireAdmin(adminID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByOrganization(admin.OrganizationID, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]AdminUserResponse, len(users))
	for i, user := range users {
		responses[i] = AdminUserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Contact:   user.Contact,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		}
	}

	return responses, nil
}

// UpdateUser edits an account inside the admin's organization. Cross-tenant
// targets fail with not-found so existence is never confirmed across
// tenants. Organization membership is never changed by this operation.
func (s *AdminService) UpdateUser(adminID, targetID uuid.UUID, req *UpdateUserRequest) (string, error) {
	admin, err := s.requireAdmin(adminID)
	if err != nil {
		return "", err
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil || target == nil {
		return "", apperrors.ErrUserNotFound
	}
	if !sameTenant(admin, target) {
		return "", apperrors.ErrUserNotFound
	}

	target.Name = req.Name
	target.Email = req.Email
	target.Contact = req.Contact

	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = string(hash)
	}

	if role := models.Role(req.Role); role.IsValid() {
		target.Role = role
	}

	if err := s.userRepo.Update(target); err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	return "User updated successfully", nil
}
