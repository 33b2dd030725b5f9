package model

import (
	"time"
)

// Role enumerates user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a platform account.
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"-"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsPremium reports whether the user's premium entitlement is currently active.
func (u *User) IsPremium(now time.Time) bool {
	return u.PremiumUntil != nil && u.PremiumUntil.After(now)
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`

	// Optional device descriptor used to register the login's device session.
	Device *CreateDeviceSessionRequest `json:"device" binding:"omitempty"`
}

// RefreshRequest is the payload for exchanging a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest is the payload for updating username/email.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email,max=100"`
}

// ChangePasswordRequest is the payload for changing the password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UserIDRequest targets another user by ID (promote/demote/premium grant).
type UserIDRequest struct {
	UserID int `json:"user_id" binding:"required,min=1"`
}
