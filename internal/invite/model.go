package invite

import (
	"time"

	"github.com/google/uuid"
)

// Invite represents a pending-or-confirmed membership link between a user
// and a group. owner_confirmed only ever flips from false to true.
type Invite struct {
	ID             uuid.UUID `json:"id"`
	GroupID        uuid.UUID `json:"group_id"`
	InviterID      uuid.UUID `json:"inviter_id"`
	ReferredUserID uuid.UUID `json:"referred_user_id"`
	OwnerConfirmed bool      `json:"owner_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

// Member represents a group member as seen on the group detail page:
// the invite link together with the referred user's display fields.
type Member struct {
	InviteID       uuid.UUID `json:"invite_id"`
	ReferredUserID uuid.UUID `json:"referred_user_id"`
	OwnerConfirmed bool      `json:"owner_confirmed"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Whatsapp       *string   `json:"whatsapp,omitempty"`
	Status         string    `json:"status"`
	JoinedAt       time.Time `json:"joined_at"`
}

// Summary combines the raw invite count of a group with its verified count.
// MemberCount >= VerifiedCount always holds.
type Summary struct {
	MemberCount   int `json:"member_count"`
	VerifiedCount int `json:"verified_count"`
}
