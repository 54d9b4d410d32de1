package progression

import (
	"github.com/google/uuid"
)

// JoinRequest represents a request to join an existing group by its code
type JoinRequest struct {
	GroupCode string `json:"group_code" validate:"required,len=6"`
}

// JoinResponse represents the created membership link
type JoinResponse struct {
	InviteID       uuid.UUID `json:"invite_id"`
	GroupID        uuid.UUID `json:"group_id"`
	OwnerConfirmed bool      `json:"owner_confirmed"`
}
