package auth

import (
	"github.com/boombag/referral/internal/user"
)

// RegisterRequest represents a signup request. An invite code is required:
// new members always enter the network through someone's level-1 group.
type RegisterRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Whatsapp   *string `json:"whatsapp,omitempty"`
	Password   string  `json:"password" validate:"required,min=6"`
	InviteCode string  `json:"invite_code" validate:"required,len=6"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a session token together with the user profile
type AuthResponse struct {
	Token string             `json:"token"`
	User  *user.UserResponse `json:"user"`
}
