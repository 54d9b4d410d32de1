package user

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the verification state of a user account
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
)

// PackType represents the plan a user selected after signup
type PackType string

const (
	PackStarter PackType = "starter"
	PackGold    PackType = "gold"
)

// Role represents the authorization level of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a member of the referral network
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Whatsapp     *string    `json:"whatsapp,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	PackType     *PackType  `json:"pack_type,omitempty"`
	CurrentLevel int        `json:"current_level"`
	InviteCode   *string    `json:"invite_code,omitempty"`
	ReferredBy   *uuid.UUID `json:"referred_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
