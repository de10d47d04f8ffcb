package main

import (
	"fmt"
	"log"
	"os"

	"account-portal-backend/internal/config"
	"account-portal-backend/internal/database"
	"account-portal-backend/internal/database/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a verified ADMIN account so a fresh deployment has someone who can
// log in and provision users. Idempotent: re-running with the same email is
// a no-op.
//
// Usage:
//
//	SEED_ADMIN_EMAIL=admin@example.com SEED_ADMIN_PASSWORD=changeme \
//	SEED_ADMIN_NAME="Portal Admin" go run scripts/seed_admin.go
func main() {
	_ = godotenv.Load()

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	name := os.Getenv("SEED_ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	if name == "" {
		name = "Administrator"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var existing models.User
	err = db.First(&existing, "email = ?", email).Error
	if err == nil {
		fmt.Printf("Admin %s already exists, nothing to do\n", email)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Verified:     true,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Created admin %s (%s)\n", name, email)
}
