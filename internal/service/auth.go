package service

import (
	"fmt"
	"strings"
	"time"

	"account-portal-backend/internal/auth"
	"account-portal-backend/internal/config"
	"account-portal-backend/internal/database/models"
	apperrors "account-portal-backend/internal/errors"
	"account-portal-backend/internal/logger"
	"account-portal-backend/internal/mailer"
	"account-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Single-use token expiry windows
const (
	VerifyTokenTTL = 24 * time.Hour
	ResetTokenTTL  = 15 * time.Minute
)

// AuthService handles registration, email verification, login and the
// password-reset token lifecycle
type AuthService struct {
	userRepo  repository.UserRepositoryInterface
	orgRepo   repository.OrganizationRepositoryInterface
	tokenRepo repository.AuthTokenRepositoryInterface
	mailer    mailer.Mailer
	tokens    *auth.TokenManager
	validator *validator.Validate

	bcryptCost  int
	backendURL  string
	frontendURL string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	tokenRepo repository.AuthTokenRepositoryInterface,
	m mailer.Mailer,
	tokens *auth.TokenManager,
	validator *validator.Validate,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		orgRepo:     orgRepo,
		tokenRepo:   tokenRepo,
		mailer:      m,
		tokens:      tokens,
		validator:   validator,
		bcryptCost:  cfg.BcryptCost,
		backendURL:  cfg.BackendURL,
		frontendURL: cfg.FrontendURL,
	}
}

// RegisterRequest represents the data needed to register an account
type RegisterRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email,max=255"`
	Contact          string `json:"contact" validate:"max=20"`
	Password         string `json:"password" validate:"required"`
	ConfirmPassword  string `json:"confirm_password" validate:"required"`
	OrganizationName string `json:"organization_name"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token string `json:"token"`
}

// ResetPasswordRequest represents the data needed to reset a password
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// Register creates an unverified account, optionally creating an
// organization, mints a 24-hour verification token and mails the
// verification link. The token never leaves the system except by mail.
func (s *AuthService) Register(req *RegisterRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", apperrors.NewValidationError("", "all fields are required")
	}

	if req.Password != req.ConfirmPassword {
		return "", apperrors.NewValidationError("password", "password and confirm password do not match")
	}

	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return "", apperrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	var organizationID *uuid.UUID
	if strings.TrimSpace(req.OrganizationName) != "" {
		org := &models.Organization{Name: req.OrganizationName}
		if err := s.orgRepo.Create(org); err != nil {
			return "", fmt.Errorf("failed to create organization: %w", err)
		}
		organizationID = &org.ID
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Contact:        req.Contact,
		PasswordHash:   string(hash),
		Verified:       false,
		Role:           models.RoleAdmin,
		OrganizationID: organizationID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token := &models.AuthToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Kind:      models.TokenKindVerifyEmail,
		ExpiresAt: time.Now().Add(VerifyTokenTTL),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", fmt.Errorf("failed to create verification token: %w", err)
	}

	verifyLink := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.backendURL, token.Token)
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for registering.\n\nPlease verify your email by clicking the link below:\n%s\n\nIf you did not create this account, please ignore this email.\n",
		user.Name, verifyLink,
	)
	if err := s.mailer.Send(user.Email, "Verify your email", body); err != nil {
		// The account stays persisted; registration reports failure anyway
		logger.WithAccount(user.Email).WithError(err).Error("verification mail delivery failed")
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	logger.WithAccount(user.Email).Info("account registered, verification mail sent")
	return "Verification email sent", nil
}

// VerifyEmail redeems a verification token: marks the account verified and
// consumes the token. A second redemption with the same value fails with
// not-found, the same as a token that never existed. Expired tokens are
// rejected but left in place.
func (s *AuthService) VerifyEmail(tokenValue string) (string, error) {
	if tokenValue == "" {
		return "", apperrors.NewValidationError("token", "token is required")
	}

	token, err := s.tokenRepo.GetByValue(tokenValue, models.TokenKindVerifyEmail)
	if err != nil {
		return "", apperrors.ErrVerifyTokenNotFound
	}

	if token.IsExpired(time.Now()) {
		return "", apperrors.ErrVerifyTokenExpired
	}

	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		return "", apperrors.ErrUserNotFound
	}

	user.Verified = true
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to mark user verified: %w", err)
	}

	if err := s.tokenRepo.Delete(token.ID); err != nil {
		return "", fmt.Errorf("failed to consume verification token: %w", err)
	}

	logger.WithAccount(user.Email).Info("email verified")
	return "Email verified successfully", nil
}

// Login authenticates an admin account and issues a signed session token.
// Unknown email, wrong password and non-admin role all collapse into the
// same generic invalid-credentials error; only the unverified case is
// reported distinctly.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("", "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil || user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, apperrors.ErrEmailNotVerified
	}

	if user.Role != models.RoleAdmin {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(user, req.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	if req.RememberMe {
		user.RememberToken = &token
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to persist remember token: %w", err)
		}
	}

	return &LoginResponse{Token: token}, nil
}

// ForgotPassword invalidates any live reset token for the account, mints a
// fresh 15-minute one and mails the reset link. Unknown emails are reported
// distinctly (known existence leak, kept from the source behavior).
func (s *AuthService) ForgotPassword(email string) (string, error) {
	if email == "" {
		return "", apperrors.NewValidationError("email", "email is required")
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		return "", apperrors.ErrEmailNotRegistered
	}

	// At most one live reset token per account: delete before insert
	if err := s.tokenRepo.DeleteByUserAndKind(user.ID, models.TokenKindResetPassword); err != nil {
		return "", fmt.Errorf("failed to invalidate previous reset tokens: %w", err)
	}

	token := &models.AuthToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Kind:      models.TokenKindResetPassword,
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", fmt.Errorf("failed to create reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token.Token)
	body := fmt.Sprintf(
		"Hi %s,\n\nYou requested to reset your password.\n\nClick the link below to reset it:\n%s\n\nThis link will expire in 15 minutes.\nIf you did not request this, please ignore this email.\n",
		user.Name, resetLink,
	)
	if err := s.mailer.Send(user.Email, "Reset your password", body); err != nil {
		logger.WithAccount(user.Email).WithError(err).Error("reset mail delivery failed")
		return "", fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.WithAccount(user.Email).Info("password reset link issued")
	return "Password reset link sent to your email", nil
}

// ResetPassword redeems a reset token and stores a new password hash.
// Existing sessions and the remember token are left untouched.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", apperrors.NewValidationError("", "all fields are required")
	}

	if req.NewPassword != req.ConfirmPassword {
		return "", apperrors.NewValidationError("password", "passwords do not match")
	}

	token, err := s.tokenRepo.GetByValue(req.Token, models.TokenKindResetPassword)
	if err != nil {
		return "", apperrors.ErrResetTokenNotFound
	}

	if token.IsExpired(time.Now()) {
		return "", apperrors.ErrResetTokenExpired
	}

	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		return "", apperrors.ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenRepo.Delete(token.ID); err != nil {
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}

	logger.WithAccount(user.Email).Info("password reset")
	return "Password reset successfully", nil
}
