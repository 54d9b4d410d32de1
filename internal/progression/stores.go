package progression

import (
	"context"

	"github.com/google/uuid"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/internal/user"
)

// UserStore is the user persistence surface the engine and broker need.
// Satisfied by *user.Repository; lookups return nil when absent.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) error
	UpdateLevel(ctx context.Context, id uuid.UUID, level int) error
	ListActive(ctx context.Context) ([]*user.User, error)
}

// GroupStore is the group registry surface. Satisfied by *group.Service,
// which enforces the 3-group cap and (owner, level) uniqueness.
type GroupStore interface {
	Create(ctx context.Context, ownerID uuid.UUID, groupNumber int) (*group.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error)
	GetByCode(ctx context.Context, code string) (*group.Group, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*group.Group, error)
}

// InviteStore is the invite persistence surface. Satisfied by
// *invite.Repository; lookups return nil when absent.
type InviteStore interface {
	Create(ctx context.Context, groupID, inviterID, referredUserID uuid.UUID) (*invite.Invite, error)
	GetByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*invite.Invite, error)
	Confirm(ctx context.Context, id uuid.UUID) (*invite.Invite, error)
	HasConfirmedAtLevel(ctx context.Context, userID uuid.UUID, level int) (bool, error)
}

// MemberLedger is the verified-member count surface. Satisfied by
// *invite.Ledger, the single source of truth for group fill levels.
type MemberLedger interface {
	CountVerifiedMembers(ctx context.Context, groupID uuid.UUID) (int, error)
}
