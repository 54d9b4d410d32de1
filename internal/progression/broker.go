package progression

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/internal/user"
)

// Join rejections. These are business outcomes, not bugs; callers match
// them with errors.Is.
var (
	ErrLevelMismatch = errors.New("user level does not match group level")
	ErrGroupFull     = errors.New("group is full")
	ErrAlreadyMember = errors.New("user is already a member of this group")
)

// Broker validates and executes a member's request to join an existing
// group by its code
type Broker struct {
	users   UserStore
	groups  GroupStore
	invites InviteStore
	ledger  MemberLedger
}

// NewBroker creates a new join broker
func NewBroker(users UserStore, groups GroupStore, invites InviteStore, ledger MemberLedger) *Broker {
	return &Broker{users: users, groups: groups, invites: invites, ledger: ledger}
}

// Join links a user into the group identified by code, validating in
// order and short-circuiting on the first failure. The fullness check is
// a best-effort pre-check; the store's unique constraint settles duplicate
// membership races. The invite starts unconfirmed and does not count
// toward the group fill until the owner confirms it.
func (b *Broker) Join(ctx context.Context, userID uuid.UUID, groupCode string) (*invite.Invite, error) {
	u, err := b.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	g, err := b.groups.GetByCode(ctx, groupCode)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	if u.CurrentLevel != g.GroupNumber {
		return nil, ErrLevelMismatch
	}

	verified, err := b.ledger.CountVerifiedMembers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if verified >= group.MaxVerifiedMembers {
		return nil, ErrGroupFull
	}

	existing, err := b.invites.GetByGroupAndUser(ctx, g.ID, u.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	inv, err := b.invites.Create(ctx, g.ID, g.OwnerID, u.ID)
	if err != nil {
		if errors.Is(err, invite.ErrAlreadyExists) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	return inv, nil
}
