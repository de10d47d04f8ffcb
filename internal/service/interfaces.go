package service

import (
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AuthServiceInterface defines the interface for the auth service
type AuthServiceInterface interface {
	Register(req *RegisterRequest) (string, error)
	VerifyEmail(tokenValue string) (string, error)
	Login(req *LoginRequest) (*LoginResponse, error)
	ForgotPassword(email string) (string, error)
	ResetPassword(req *ResetPasswordRequest) (string, error)
}

// AdminServiceInterface defines the interface for the admin provisioning service
type AdminServiceInterface interface {
	AddUser(adminID uuid.UUID, req *AddUserRequest) (string, error)
	GetAdminOrganization(adminID uuid.UUID) (*OrganizationResponse, error)
	GetUsers(adminID uuid.UUID) ([]AdminUserResponse, error)
	UpdateUser(adminID, targetID uuid.UUID, req *UpdateUserRequest) (string, error)
}
