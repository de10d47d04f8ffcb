package routes

import (
	"account-portal-backend/internal/api/handlers"
	"account-portal-backend/internal/api/middleware"
	"account-portal-backend/internal/auth"
	"account-portal-backend/internal/config"
	"account-portal-backend/internal/mailer"
	"account-portal-backend/internal/repository"
	"account-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)

	// Initialize collaborators
	smtpMailer := mailer.NewSMTPMailer(cfg)
	tokenManager := auth.NewTokenManager(cfg.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	// Initialize services
	authService := service.NewAuthService(userRepo, organizationRepo, tokenRepo, smtpMailer, tokenManager, validator, cfg)
	adminService := service.NewAdminService(userRepo, organizationRepo, cfg.BcryptCost)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg.FrontendURL)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)

	// Public auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.GET("/verify-email", authHandler.VerifyEmail)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	// Admin routes, gated on a valid admin session token
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		adminGroup.POST("/users", adminHandler.AddUser)
		adminGroup.GET("/users", adminHandler.GetUsers)
		adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
		adminGroup.GET("/organization", adminHandler.GetOrganization)
	}

	return router
}
