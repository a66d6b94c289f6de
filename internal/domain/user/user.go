package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrInvalidRole        = errors.New("role must be artisan or buyer")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("name is required")
	ErrBioTooLong         = errors.New("bio must be at most 500 characters")
)

type Role string

const (
	RoleArtisan Role = "artisan"
	RoleBuyer   Role = "buyer"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	Bio          string    `json:"bio,omitempty"`
	Craft        string    `json:"craft,omitempty"`
	Region       string    `json:"region,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
