package progression

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/user"
)

// Common errors
var ErrInviteNotFound = errors.New("invite not found")

// EligibleUser describes an owner whose latest group is full but whose
// next group has not been created yet
type EligibleUser struct {
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	LastGroupNumber int       `json:"last_group_number"`
	VerifiedCount   int       `json:"verified_count"`
}

// Engine decides, for each verification or confirmation event, whether a
// user's level advances and whether a successor group is created. It is
// stateless; all decisions re-read the store.
type Engine struct {
	users   UserStore
	groups  GroupStore
	invites InviteStore
	ledger  MemberLedger
}

// NewEngine creates a new progression engine
func NewEngine(users UserStore, groups GroupStore, invites InviteStore, ledger MemberLedger) *Engine {
	return &Engine{users: users, groups: groups, invites: invites, ledger: ledger}
}

// ActivateUser transitions a user to active and seeds their first group.
// Re-running it on an already-active user converges to the same state.
func (e *Engine) ActivateUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if u.Status != user.StatusActive {
		if err := e.users.UpdateStatus(ctx, userID, user.StatusActive); err != nil {
			return nil, err
		}
		u.Status = user.StatusActive
	}

	if err := e.ensureFirstGroup(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// RejectUser transitions a user to rejected
func (e *Engine) RejectUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if u.Status != user.StatusRejected {
		if err := e.users.UpdateStatus(ctx, userID, user.StatusRejected); err != nil {
			return nil, err
		}
		u.Status = user.StatusRejected
	}

	return u, nil
}

// ensureFirstGroup seeds a level-1 group for an active user who owns none,
// and lifts their level to 1. Both halves are idempotent, so the signup
// seeding path and the post-confirmation re-check share this one procedure.
func (e *Engine) ensureFirstGroup(ctx context.Context, u *user.User) error {
	if u.Status != user.StatusActive {
		return nil
	}

	groups, err := e.groups.ListByOwner(ctx, u.ID)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		if _, err := e.groups.Create(ctx, u.ID, 1); err != nil {
			// A concurrent seeding already created it.
			if !errors.Is(err, group.ErrDuplicateLevel) {
				return err
			}
		}
	}

	if u.CurrentLevel < 1 {
		if err := e.users.UpdateLevel(ctx, u.ID, 1); err != nil {
			return err
		}
		u.CurrentLevel = 1
	}

	return nil
}

// ConfirmMember persists an owner's confirmation of a group member and
// runs the follow-up checks: a level-1 confirmation may seed the referred
// user's own first group, a higher-level confirmation may have just filled
// the owner's latest group and just satisfied the referred user's
// placement gate.
func (e *Engine) ConfirmMember(ctx context.Context, inviteID uuid.UUID) error {
	inv, err := e.invites.Confirm(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrInviteNotFound
	}

	g, err := e.groups.GetByID(ctx, inv.GroupID)
	if err != nil {
		return err
	}

	if g.GroupNumber == 1 {
		referred, err := e.users.GetByID(ctx, inv.ReferredUserID)
		if err != nil {
			return err
		}
		if referred == nil {
			return nil
		}
		return e.ensureFirstGroup(ctx, referred)
	}

	if _, err := e.TryAdvance(ctx, inv.ReferredUserID); err != nil {
		return err
	}

	_, err = e.TryAdvance(ctx, g.OwnerID)
	return err
}

// TryAdvance runs the eligibility check for an owner. It advances the
// owner's level when their latest group holds four verified members, and
// creates the successor group when the placement gate passes: the owner
// must already be a confirmed member of someone else's group at the level
// they are unlocking. Returns whether a group was created; every abort
// path returns false without error.
func (e *Engine) TryAdvance(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	groups, err := e.groups.ListByOwner(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if len(groups) == 0 {
		return false, nil
	}
	if len(groups) >= group.MaxGroups {
		return false, nil
	}

	last := groups[len(groups)-1]
	nextNumber := last.GroupNumber + 1

	verified, err := e.ledger.CountVerifiedMembers(ctx, last.ID)
	if err != nil {
		return false, err
	}

	// Level reflects eligibility; group creation reflects confirmed
	// placement. The two advance independently.
	if verified >= group.MaxVerifiedMembers {
		owner, err := e.users.GetByID(ctx, ownerID)
		if err != nil {
			return false, err
		}
		if owner == nil {
			return false, user.ErrUserNotFound
		}
		if owner.CurrentLevel == last.GroupNumber {
			if err := e.users.UpdateLevel(ctx, ownerID, nextNumber); err != nil {
				return false, err
			}
		}
	}

	for _, g := range groups {
		if g.GroupNumber == nextNumber {
			return false, nil
		}
	}

	confirmed, err := e.invites.HasConfirmedAtLevel(ctx, ownerID, nextNumber)
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, nil
	}

	if _, err := e.groups.Create(ctx, ownerID, nextNumber); err != nil {
		// Lost the race against a concurrent advance; the group exists.
		if errors.Is(err, group.ErrDuplicateLevel) || errors.Is(err, group.ErrCapExceeded) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// FindUsersMissingNextGroup scans all active users and reports those whose
// latest group is full and placement gate passes, yet whose next group has
// not materialized. Read-only; used for administrative auditing of
// partially-completed advancement.
func (e *Engine) FindUsersMissingNextGroup(ctx context.Context) ([]*EligibleUser, error) {
	active, err := e.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*EligibleUser
	for _, u := range active {
		groups, err := e.groups.ListByOwner(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if len(groups) == 0 || len(groups) >= group.MaxGroups {
			continue
		}

		last := groups[len(groups)-1]
		nextNumber := last.GroupNumber + 1

		exists := false
		for _, g := range groups {
			if g.GroupNumber == nextNumber {
				exists = true
				break
			}
		}
		if exists {
			continue
		}

		verified, err := e.ledger.CountVerifiedMembers(ctx, last.ID)
		if err != nil {
			return nil, err
		}
		if verified < group.MaxVerifiedMembers {
			continue
		}

		confirmed, err := e.invites.HasConfirmedAtLevel(ctx, u.ID, nextNumber)
		if err != nil {
			return nil, err
		}
		if !confirmed {
			continue
		}

		eligible = append(eligible, &EligibleUser{
			UserID:          u.ID,
			Name:            u.Name,
			Email:           u.Email,
			LastGroupNumber: last.GroupNumber,
			VerifiedCount:   verified,
		})
	}

	return eligible, nil
}
