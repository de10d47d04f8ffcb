package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "user"}
		assert.Equal(t, "user not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "user"}
		err2 := &NotFoundError{Entity: "user"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "user"}
		err2 := &NotFoundError{Entity: "organization"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrUserNotFound, ErrUserNotFound))
		assert.False(t, errors.Is(ErrUserNotFound, ErrOrganizationNotFound))
		assert.False(t, errors.Is(ErrVerifyTokenNotFound, ErrResetTokenNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrUserNotFound))
		assert.True(t, IsNotFound(ErrResetTokenNotFound))
		assert.False(t, IsNotFound(ErrUserExists))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "user", Context: "with this email"}
		assert.Equal(t, "user already exists with this email", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "user"}
		assert.Equal(t, "user already exists", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		err1 := &AlreadyExistsError{Entity: "user", Context: "with this email"}
		assert.True(t, errors.Is(err1, ErrUserExists))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrUserExists))
		assert.False(t, IsAlreadyExists(ErrUserNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "email", Message: "invalid format"}
		assert.Equal(t, "validation error: email - invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "passwords do not match"}
		assert.Equal(t, "validation error: passwords do not match", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("email", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrUserNotFound))
	})
}

func TestExpiredError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &ExpiredError{Entity: "reset token"}
		assert.Equal(t, "reset token expired", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		assert.True(t, errors.Is(ErrResetTokenExpired, ErrResetTokenExpired))
		assert.False(t, errors.Is(ErrResetTokenExpired, ErrVerifyTokenExpired))
	})

	t.Run("IsExpired helper", func(t *testing.T) {
		assert.True(t, IsExpired(ErrVerifyTokenExpired))
		assert.False(t, IsExpired(ErrVerifyTokenNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	t.Run("IsAuthentication helper", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrInvalidCredentials))
		assert.True(t, IsAuthentication(ErrEmailNotVerified))
		assert.False(t, IsAuthentication(ErrAdminRequired))
	})

	t.Run("IsAuthorization helper", func(t *testing.T) {
		assert.True(t, IsAuthorization(ErrAdminRequired))
		assert.False(t, IsAuthorization(ErrInvalidCredentials))
	})

	t.Run("distinct not-verified message", func(t *testing.T) {
		assert.NotEqual(t, ErrInvalidCredentials.Error(), ErrEmailNotVerified.Error())
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("session")
		assert.Equal(t, "session not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("NewAlreadyExistsError", func(t *testing.T) {
		err := NewAlreadyExistsError("organization", "with this name")
		assert.Equal(t, "organization already exists with this name", err.Error())
		assert.True(t, IsAlreadyExists(err))
	})

	t.Run("NewExpiredError", func(t *testing.T) {
		err := NewExpiredError("invite")
		assert.Equal(t, "invite expired", err.Error())
		assert.True(t, IsExpired(err))
	})
}
