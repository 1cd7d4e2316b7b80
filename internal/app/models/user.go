package models

import (
	"time"
)

// RoleType defines the role of an application user
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleAccountant RoleType = "ACCOUNTANT"
)

// User defines the user model based on the 'users' table.
// Users are back-office operators (admins and accountants), not students.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"accounts@college.edu"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	DisplayName string     `json:"displayName" db:"display_name" example:"A. Sharma"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"ACCOUNTANT"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
