package user

import (
	"github.com/google/uuid"
)

// UpdateProfileRequest represents the request to update profile fields
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Whatsapp *string `json:"whatsapp,omitempty"`
}

// SelectPackRequest represents the request to choose a plan
type SelectPackRequest struct {
	PackType PackType `json:"pack_type" validate:"required"`
}

// UserResponse represents the response for a user profile
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Whatsapp     *string    `json:"whatsapp,omitempty"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	PackType     *PackType  `json:"pack_type,omitempty"`
	CurrentLevel int        `json:"current_level"`
	InviteCode   *string    `json:"invite_code,omitempty"`
	ReferredBy   *uuid.UUID `json:"referred_by,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Whatsapp:     u.Whatsapp,
		Role:         u.Role,
		Status:       u.Status,
		PackType:     u.PackType,
		CurrentLevel: u.CurrentLevel,
		InviteCode:   u.InviteCode,
		ReferredBy:   u.ReferredBy,
		CreatedAt:    u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
