package dto

import "time"

// RegisterRequest registration input. InviteCode is required for managers.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	Role       string `json:"role"` // owner | manager
	InviteCode string `json:"invite_code,omitempty"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse a user without its password hash.
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	WorkshopID *string   `json:"workshop_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResponse bearer token plus the session user.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
