package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCreate represents registration data
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=256"`
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserLogin represents login credentials
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TimezoneUpdate represents a timezone change request
type TimezoneUpdate struct {
	Timezone string `json:"timezone" validate:"required,max=256"`
}

// AuthResult is returned on successful register/login
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
