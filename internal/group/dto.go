package group

import (
	"github.com/google/uuid"

	"github.com/boombag/referral/internal/invite"
)

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID            uuid.UUID        `json:"id"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	Code          string           `json:"code"`
	GroupNumber   int              `json:"group_number"`
	CreatedAt     string           `json:"created_at"`
	MemberCount   *int             `json:"member_count,omitempty"`
	VerifiedCount *int             `json:"verified_count,omitempty"`
	Members       []*invite.Member `json:"members,omitempty"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		OwnerID:     g.OwnerID,
		Code:        g.Code,
		GroupNumber: g.GroupNumber,
		CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// WithSummary attaches member and verified counts to a group response
func (r *GroupResponse) WithSummary(s *invite.Summary) *GroupResponse {
	r.MemberCount = &s.MemberCount
	r.VerifiedCount = &s.VerifiedCount
	return r
}
