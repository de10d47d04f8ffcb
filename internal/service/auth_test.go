package service_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"account-portal-backend/internal/auth"
	"account-portal-backend/internal/config"
	"account-portal-backend/internal/database/models"
	apperrors "account-portal-backend/internal/errors"
	"account-portal-backend/internal/mocks"
	"account-portal-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUserRepo  *mocks.MockUserRepositoryInterface
	mockOrgRepo   *mocks.MockOrganizationRepositoryInterface
	mockTokenRepo *mocks.MockAuthTokenRepositoryInterface
	mockMailer    *mocks.MockMailer
	tokens        *auth.TokenManager
	authService   *service.AuthService
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockTokenRepo = mocks.NewMockAuthTokenRepositoryInterface(suite.ctrl)
	suite.mockMailer = mocks.NewMockMailer(suite.ctrl)
	suite.tokens = auth.NewTokenManager("test-secret")

	cfg := &config.Config{
		BcryptCost:  bcrypt.MinCost,
		BackendURL:  "http://backend.test",
		FrontendURL: "http://frontend.test",
	}
	suite.authService = service.NewAuthService(
		suite.mockUserRepo,
		suite.mockOrgRepo,
		suite.mockTokenRepo,
		suite.mockMailer,
		suite.tokens,
		validator.New(),
		cfg,
	)
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func registerRequest() *service.RegisterRequest {
	return &service.RegisterRequest{
		Name:            "John Doe",
		Email:           "john@example.com",
		Contact:         "555-0123",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func hashPassword(t assert.TestingT, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

/*************** Register ***************/

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	req := registerRequest()

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound)

	var createdUser *models.User
	suite.mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		u.ID = uuid.New()
		createdUser = u
		return nil
	})

	var createdToken *models.AuthToken
	suite.mockTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(t *models.AuthToken) error {
		createdToken = t
		return nil
	})

	suite.mockMailer.EXPECT().Send(req.Email, "Verify your email", gomock.Any()).Return(nil)

	msg, err := suite.authService.Register(req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Verification email sent", msg)

	// registrants become unverified admins with no organization
	assert.Equal(suite.T(), models.RoleAdmin, createdUser.Role)
	assert.False(suite.T(), createdUser.Verified)
	assert.Nil(suite.T(), createdUser.OrganizationID)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte(req.Password)))

	assert.Equal(suite.T(), models.TokenKindVerifyEmail, createdToken.Kind)
	assert.Equal(suite.T(), createdUser.ID, createdToken.UserID)
	assert.WithinDuration(suite.T(), time.Now().Add(service.VerifyTokenTTL), createdToken.ExpiresAt, time.Minute)
}

func (suite *AuthServiceTestSuite) TestRegister_MailBodyCarriesVerifyLink() {
	req := registerRequest()

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().Create(gomock.Any()).Return(nil)

	var tokenValue string
	suite.mockTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(t *models.AuthToken) error {
		tokenValue = t.Token
		return nil
	})

	suite.mockMailer.EXPECT().
		Send(req.Email, "Verify your email", gomock.Any()).
		DoAndReturn(func(to, subject, body string) error {
			assert.Contains(suite.T(), body, "http://backend.test/api/auth/verify-email?token="+tokenValue)
			return nil
		})

	_, err := suite.authService.Register(req)
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRegister_WithOrganization() {
	req := registerRequest()
	req.OrganizationName = "Acme Corp"

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound)

	orgID := uuid.New()
	suite.mockOrgRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(org *models.Organization) error {
		assert.Equal(suite.T(), "Acme Corp", org.Name)
		org.ID = orgID
		return nil
	})

	suite.mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.NotNil(suite.T(), u.OrganizationID)
		assert.Equal(suite.T(), orgID, *u.OrganizationID)
		return nil
	})
	suite.mockTokenRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockMailer.EXPECT().Send(req.Email, gomock.Any(), gomock.Any()).Return(nil)

	_, err := suite.authService.Register(req)
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRegister_BlankOrganizationNameSkipsCreation() {
	req := registerRequest()
	req.OrganizationName = "   "

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockTokenRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockMailer.EXPECT().Send(req.Email, gomock.Any(), gomock.Any()).Return(nil)

	_, err := suite.authService.Register(req)
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRegister_MissingFields() {
	req := registerRequest()
	req.Email = ""

	msg, err := suite.authService.Register(req)

	assert.Error(suite.T(), err)
	assert.Empty(suite.T(), msg)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestRegister_PasswordMismatch() {
	req := registerRequest()
	req.ConfirmPassword = "different"

	_, err := suite.authService.Register(req)

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	req := registerRequest()

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(&models.User{Email: req.Email}, nil)

	_, err := suite.authService.Register(req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
	assert.True(suite.T(), apperrors.IsAlreadyExists(err))
}

func (suite *AuthServiceTestSuite) TestRegister_MailFailureFailsOperation() {
	req := registerRequest()

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockTokenRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockMailer.EXPECT().Send(req.Email, gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	msg, err := suite.authService.Register(req)

	// the account stays persisted; only the operation reports failure
	assert.Error(suite.T(), err)
	assert.Empty(suite.T(), msg)
	assert.Contains(suite.T(), err.Error(), "failed to send verification email")
}

/*************** VerifyEmail ***************/

func (suite *AuthServiceTestSuite) TestVerifyEmail_Success() {
	userID := uuid.New()
	token := &models.AuthToken{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    userID,
		Token:     "tok-123",
		Kind:      models.TokenKindVerifyEmail,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	suite.mockTokenRepo.EXPECT().GetByValue("tok-123", models.TokenKindVerifyEmail).Return(token, nil)
	suite.mockUserRepo.EXPECT().GetByID(userID).Return(&models.User{BaseModel: models.BaseModel{ID: userID}}, nil)
	suite.mockUserRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.True(suite.T(), u.Verified)
		return nil
	})
	suite.mockTokenRepo.EXPECT().Delete(token.ID).Return(nil)

	msg, err := suite.authService.VerifyEmail("tok-123")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Email verified successfully", msg)
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_EmptyToken() {
	_, err := suite.authService.VerifyEmail("")

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_UnknownToken() {
	suite.mockTokenRepo.EXPECT().GetByValue("gone", models.TokenKindVerifyEmail).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.authService.VerifyEmail("gone")

	assert.ErrorIs(suite.T(), err, apperrors.ErrVerifyTokenNotFound)
	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_ExpiredTokenLeftInPlace() {
	token := &models.AuthToken{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    uuid.New(),
		Token:     "stale",
		Kind:      models.TokenKindVerifyEmail,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	// no Delete expectation: an expired token is rejected but not consumed
	suite.mockTokenRepo.EXPECT().GetByValue("stale", models.TokenKindVerifyEmail).Return(token, nil)

	_, err := suite.authService.VerifyEmail("stale")

	assert.ErrorIs(suite.T(), err, apperrors.ErrVerifyTokenExpired)
	assert.True(suite.T(), apperrors.IsExpired(err))
}

/*************** Login ***************/

func (suite *AuthServiceTestSuite) verifiedAdmin(password string) *models.User {
	return &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hashPassword(suite.T(), password),
		Verified:     true,
		Role:         models.RoleAdmin,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	user := suite.verifiedAdmin("secret123")
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)

	resp, err := suite.authService.Login(&service.LoginRequest{Email: user.Email, Password: "secret123"})

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), resp.Token)

	claims, err := suite.tokens.ValidateToken(resp.Token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID.String(), claims.UserID)
	assert.Equal(suite.T(), user.Email, claims.Email)
	assert.Equal(suite.T(), string(models.RoleAdmin), claims.Role)

	// default sessions last a day, not a week
	assert.WithinDuration(suite.T(), time.Now().Add(auth.SessionLifetime), claims.ExpiresAt.Time, time.Minute)
}

func (suite *AuthServiceTestSuite) TestLogin_RememberMePersistsToken() {
	user := suite.verifiedAdmin("secret123")
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)

	var persisted *models.User
	suite.mockUserRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(u *models.User) error {
		persisted = u
		return nil
	})

	resp, err := suite.authService.Login(&service.LoginRequest{Email: user.Email, Password: "secret123", RememberMe: true})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), persisted.RememberToken)
	assert.Equal(suite.T(), resp.Token, *persisted.RememberToken)

	claims, err := suite.tokens.ValidateToken(resp.Token)
	assert.NoError(suite.T(), err)
	assert.WithinDuration(suite.T(), time.Now().Add(auth.RememberSessionLifetime), claims.ExpiresAt.Time, time.Minute)
}

func (suite *AuthServiceTestSuite) TestLogin_MissingFields() {
	_, err := suite.authService.Login(&service.LoginRequest{Email: "a@b.c"})

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	suite.mockUserRepo.EXPECT().GetByEmail("ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.authService.Login(&service.LoginRequest{Email: "ghost@example.com", Password: "x"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	user := suite.verifiedAdmin("secret123")
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)

	_, err := suite.authService.Login(&service.LoginRequest{Email: user.Email, Password: "wrong"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnverifiedReportedDistinctly() {
	user := suite.verifiedAdmin("secret123")
	user.Verified = false
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)

	_, err := suite.authService.Login(&service.LoginRequest{Email: user.Email, Password: "secret123"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrEmailNotVerified)
}

func (suite *AuthServiceTestSuite) TestLogin_NonAdminCollapsesToInvalidCredentials() {
	user := suite.verifiedAdmin("secret123")
	user.Role = models.RoleUser
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)

	_, err := suite.authService.Login(&service.LoginRequest{Email: user.Email, Password: "secret123"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

/*************** ForgotPassword ***************/

func (suite *AuthServiceTestSuite) TestForgotPassword_Success() {
	user := suite.verifiedAdmin("secret123")
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)

	// previous reset tokens go away before the new one is minted
	gomock.InOrder(
		suite.mockTokenRepo.EXPECT().DeleteByUserAndKind(user.ID, models.TokenKindResetPassword).Return(nil),
		suite.mockTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(t *models.AuthToken) error {
			assert.Equal(suite.T(), models.TokenKindResetPassword, t.Kind)
			assert.WithinDuration(suite.T(), time.Now().Add(service.ResetTokenTTL), t.ExpiresAt, time.Minute)
			return nil
		}),
	)

	suite.mockMailer.EXPECT().
		Send(user.Email, "Reset your password", gomock.Any()).
		DoAndReturn(func(to, subject, body string) error {
			assert.Contains(suite.T(), body, "http://frontend.test/reset-password?token=")
			return nil
		})

	msg, err := suite.authService.ForgotPassword(user.Email)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Password reset link sent to your email", msg)
}

func (suite *AuthServiceTestSuite) TestForgotPassword_EmptyEmail() {
	_, err := suite.authService.ForgotPassword("")

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestForgotPassword_UnknownEmail() {
	suite.mockUserRepo.EXPECT().GetByEmail("ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.authService.ForgotPassword("ghost@example.com")

	assert.ErrorIs(suite.T(), err, apperrors.ErrEmailNotRegistered)
}

/*************** ResetPassword ***************/

func (suite *AuthServiceTestSuite) TestResetPassword_Success() {
	userID := uuid.New()
	token := &models.AuthToken{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    userID,
		Token:     "reset-tok",
		Kind:      models.TokenKindResetPassword,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	user := &models.User{
		BaseModel:    models.BaseModel{ID: userID},
		PasswordHash: hashPassword(suite.T(), "old-password"),
	}

	suite.mockTokenRepo.EXPECT().GetByValue("reset-tok", models.TokenKindResetPassword).Return(token, nil)
	suite.mockUserRepo.EXPECT().GetByID(userID).Return(user, nil)
	suite.mockUserRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")))
		return nil
	})
	suite.mockTokenRepo.EXPECT().Delete(token.ID).Return(nil)

	msg, err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:           "reset-tok",
		NewPassword:     "new-password",
		ConfirmPassword: "new-password",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Password reset successfully", msg)
}

func (suite *AuthServiceTestSuite) TestResetPassword_Mismatch() {
	_, err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:           "reset-tok",
		NewPassword:     "one",
		ConfirmPassword: "two",
	})

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestResetPassword_UnknownToken() {
	suite.mockTokenRepo.EXPECT().GetByValue("gone", models.TokenKindResetPassword).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:           "gone",
		NewPassword:     "new-password",
		ConfirmPassword: "new-password",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrResetTokenNotFound)
	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *AuthServiceTestSuite) TestResetPassword_ExpiredToken() {
	token := &models.AuthToken{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    uuid.New(),
		Token:     "stale",
		Kind:      models.TokenKindResetPassword,
		ExpiresAt: time.Now().Add(-time.Second),
	}
	suite.mockTokenRepo.EXPECT().GetByValue("stale", models.TokenKindResetPassword).Return(token, nil)

	_, err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:           "stale",
		NewPassword:     "new-password",
		ConfirmPassword: "new-password",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrResetTokenExpired)
	assert.True(suite.T(), apperrors.IsExpired(err))
}

func (suite *AuthServiceTestSuite) TestResetPassword_LongPasswordStillHashes() {
	// bcrypt rejects inputs over 72 bytes; make sure the failure surfaces
	// as an error instead of a silent truncation panic
	long := strings.Repeat("a", 80)
	suite.mockTokenRepo.EXPECT().GetByValue("reset-tok", models.TokenKindResetPassword).Return(&models.AuthToken{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    uuid.New(),
		Token:     "reset-tok",
		Kind:      models.TokenKindResetPassword,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil)
	suite.mockUserRepo.EXPECT().GetByID(gomock.Any()).Return(&models.User{}, nil)

	_, err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:           "reset-tok",
		NewPassword:     long,
		ConfirmPassword: long,
	})

	assert.Error(suite.T(), err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
