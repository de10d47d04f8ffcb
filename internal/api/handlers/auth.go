package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	apperrors "account-portal-backend/internal/errors"
	"account-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication flows
type AuthHandler struct {
	service     service.AuthServiceInterface
	frontendURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service service.AuthServiceInterface, frontendURL string) *AuthHandler {
	return &AuthHandler{service: service, frontendURL: frontendURL}
}

// MessageResponse represents a user-facing confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ForgotPasswordRequest represents the forgot-password request body
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Create an unverified account and send a verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param account body service.RegisterRequest true "Registration data"
// @Success 201 {object} MessageResponse "Verification email sent"
// @Failure 400 {object} map[string]interface{} "Invalid request body or validation failure"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service.Register(&req)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: message})
}

// VerifyEmail handles GET /api/auth/verify-email
// Redirects to the frontend verify-email page with the outcome.
// @Summary Verify an email address
// @Description Redeem a verification token and redirect to the frontend
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 302 "Redirect to frontend verify-email page"
// @Router /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")

	if _, err := h.service.VerifyEmail(token); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf(
			"%s/verify-email?status=error&message=%s",
			h.frontendURL, url.QueryEscape(err.Error()),
		))
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/verify-email?status=success")
}

// Login handles POST /api/auth/login
// @Summary Log in as an administrator
// @Description Authenticate admin credentials and issue a signed session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse "Session token"
// @Failure 400 {object} map[string]interface{} "Missing email or password"
// @Failure 401 {object} map[string]interface{} "Invalid credentials or unverified email"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request a password reset
// @Description Invalidate prior reset tokens, mint a fresh one and mail the reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param email body ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse "Reset link sent"
// @Failure 400 {object} map[string]interface{} "Missing or unknown email"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service.ForgotPassword(req.Email)
	if err != nil {
		// Unknown emails get a distinct message with the same status as
		// validation failures, matching the long-standing behavior.
		if apperrors.IsValidation(err) || apperrors.IsAuthentication(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reset request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Reset a password
// @Description Redeem a reset token and store the new password
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body service.ResetPasswordRequest true "Reset data"
// @Success 200 {object} MessageResponse "Password reset"
// @Failure 400 {object} map[string]interface{} "Validation failure"
// @Failure 404 {object} map[string]interface{} "Unknown or consumed token"
// @Failure 410 {object} map[string]interface{} "Expired token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service.ResetPassword(&req)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsExpired(err) {
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: message})
}
