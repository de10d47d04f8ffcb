package models

// Organization represents the tenant boundary for admin-scoped user management
type Organization struct {
	BaseModel
	Name string `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`

	// Relationships
	Users []User `json:"users,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
