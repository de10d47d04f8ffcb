package handlers

import (
	"errors"
	"net/http"

	"account-portal-backend/internal/auth"
	apperrors "account-portal-backend/internal/errors"
	"account-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles HTTP requests for admin user provisioning
type AdminHandler struct {
	service service.AdminServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service service.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// actingAdminID resolves the authenticated admin's id from validated claims
func actingAdminID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, false
	}

	id, err := claims.SubjectID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session subject"})
		return uuid.Nil, false
	}

	return id, true
}

// AddUser handles POST /api/admin/users
// @Summary Provision a user
// @Description Create a pre-verified account in the acting admin's organization
// @Tags admin
// @Accept json
// @Produce json
// @Param user body service.AddUserRequest true "User data"
// @Success 201 {object} MessageResponse "User added"
// @Failure 400 {object} map[string]interface{} "Missing organization name"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *AdminHandler) AddUser(c *gin.Context) {
	adminID, ok := actingAdminID(c)
	if !ok {
		return
	}

	var req service.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service.AddUser(adminID, &req)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsAuthorization(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: message})
}

// GetOrganization handles GET /api/admin/organization
// @Summary Get the acting admin's organization
// @Description Returns the admin's organization, or null when none exists yet
// @Tags admin
// @Produce json
// @Success 200 {object} service.OrganizationResponse "Organization, possibly null"
// @Failure 404 {object} map[string]interface{} "Admin account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /admin/organization [get]
func (h *AdminHandler) GetOrganization(c *gin.Context) {
	adminID, ok := actingAdminID(c)
	if !ok {
		return
	}

	org, err := h.service.GetAdminOrganization(adminID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get organization", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

// GetUsers handles GET /api/admin/users
// @Summary List provisioned users
// @Description List accounts in the acting admin's organization, newest first
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{} "Users in the admin's organization"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	adminID, ok := actingAdminID(c)
	if !ok {
		return
	}

	users, err := h.service.GetUsers(adminID)
	if err != nil {
		if apperrors.IsAuthorization(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser handles PUT /api/admin/users/:id
// @Summary Edit a provisioned user
// @Description Update an account inside the acting admin's organization
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Target user ID (UUID)"
// @Param user body service.UpdateUserRequest true "User data"
// @Success 200 {object} MessageResponse "User updated"
// @Failure 400 {object} map[string]interface{} "Invalid target ID or body"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin"
// @Failure 404 {object} map[string]interface{} "Target not found in this organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, ok := actingAdminID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID: invalid UUID format"})
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service.UpdateUser(adminID, targetID, &req)
	if err != nil {
		if apperrors.IsAuthorization(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: message})
}
