package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ROLE CONSTANTS
// =====================================================
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// =====================================================
// ENTITY: User
// =====================================================
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
