package auth

import (
	"fmt"
	"time"

	"account-portal-backend/internal/database/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session token lifetimes. "Remember me" logins stay valid for a week,
// everything else for a day.
const (
	SessionLifetime         = 24 * time.Hour
	RememberSessionLifetime = 7 * 24 * time.Hour
)

// AuthClaims represents JWT session token claims
type AuthClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates signed session tokens
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// GenerateSessionToken creates a signed JWT for the user embedding
// {id, email, role}. Lifetime is 7 days with rememberMe, 1 day otherwise.
func (m *TokenManager) GenerateSessionToken(user *models.User, rememberMe bool) (string, error) {
	lifetime := SessionLifetime
	if rememberMe {
		lifetime = RememberSessionLifetime
	}

	now := time.Now()
	claims := &AuthClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "account-portal-backend",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken validates and parses a session token
func (m *TokenManager) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// SubjectID parses the user id embedded in the claims
func (c *AuthClaims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
