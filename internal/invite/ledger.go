package invite

import (
	"context"

	"github.com/google/uuid"
)

// Counter is the persistence surface the ledger needs
type Counter interface {
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error)
	CountVerifiedByGroup(ctx context.Context, groupID uuid.UUID) (int, error)
	ListMembersByGroup(ctx context.Context, groupID uuid.UUID) ([]*Member, error)
}

// Ledger computes membership counts for groups. Verified counts are
// recomputed on every call, never cached: an admission decision must see
// the count it is acting on.
type Ledger struct {
	counter Counter
}

// NewLedger creates a new membership ledger
func NewLedger(counter Counter) *Ledger {
	return &Ledger{counter: counter}
}

// CountVerifiedMembers returns the number of verified members of a group:
// owner-confirmed invites whose referred user is active
func (l *Ledger) CountVerifiedMembers(ctx context.Context, groupID uuid.UUID) (int, error) {
	return l.counter.CountVerifiedByGroup(ctx, groupID)
}

// Summary returns the raw member count alongside the verified count
func (l *Ledger) Summary(ctx context.Context, groupID uuid.UUID) (*Summary, error) {
	members, err := l.counter.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	verified, err := l.counter.CountVerifiedByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &Summary{MemberCount: members, VerifiedCount: verified}, nil
}

// Members returns the invite rows of a group joined with user details
func (l *Ledger) Members(ctx context.Context, groupID uuid.UUID) ([]*Member, error) {
	return l.counter.ListMembersByGroup(ctx, groupID)
}
