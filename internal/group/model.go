package group

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxGroups is the hard cap on groups per owner. There is no level 4.
	MaxGroups = 3
	// MaxVerifiedMembers is the fill threshold of a group.
	MaxVerifiedMembers = 4
)

// Group represents one progression level of its owner. Groups are never
// deleted and never renumbered.
type Group struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Code        string    `json:"code"`
	GroupNumber int       `json:"group_number"`
	CreatedAt   time.Time `json:"created_at"`
}
