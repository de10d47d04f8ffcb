package models

import (
	"github.com/google/uuid"
)

// Role is the closed set of account roles
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User represents a credential-bearing account, optionally attached to an organization
type User struct {
	BaseModel
	Name           string     `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Contact        string     `json:"contact" gorm:"size:20"`
	PasswordHash   string     `json:"-" gorm:"column:password_hash;not null"`
	Verified       bool       `json:"verified" gorm:"not null;default:false"`
	Role           Role       `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	RememberToken  *string    `json:"-" gorm:"size:512"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
