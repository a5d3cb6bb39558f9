package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" example:"Jane Silva"`
	Email       string     `json:"email" db:"email" example:"jane@campus.edu"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"EXAMINER"`
	NIC         string     `json:"nic,omitempty" db:"nic" example:"991234567V"` // national identity number
	Phone       string     `json:"phone,omitempty" db:"phone" example:"0771234567"`
	Address     string     `json:"address,omitempty" db:"address"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
