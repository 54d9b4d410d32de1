package invite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrAlreadyExists is returned when an invite for the same (group, user)
// pair is inserted twice. The unique constraint at the store is the
// authoritative arbiter under concurrent joins.
var ErrAlreadyExists = errors.New("invite already exists for this group and user")

const inviteColumns = `id, group_id, inviter_id, referred_user_id, owner_confirmed, created_at`

// Repository handles invite data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invite repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanInvite(row interface{ Scan(dest ...any) error }) (*Invite, error) {
	inv := &Invite{}
	err := row.Scan(
		&inv.ID,
		&inv.GroupID,
		&inv.InviterID,
		&inv.ReferredUserID,
		&inv.OwnerConfirmed,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create inserts a new unconfirmed invite
func (r *Repository) Create(ctx context.Context, groupID, inviterID, referredUserID uuid.UUID) (*Invite, error) {
	query := `
		INSERT INTO invites (id, group_id, inviter_id, referred_user_id, owner_confirmed)
		VALUES ($1, $2, $3, $4, false)
		RETURNING ` + inviteColumns

	inv, err := scanInvite(r.db.QueryRowContext(ctx, query, uuid.New(), groupID, inviterID, referredUserID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return inv, nil
}

// GetByGroupAndUser retrieves the invite linking a user to a group, if any
func (r *Repository) GetByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE group_id = $1 AND referred_user_id = $2`

	inv, err := scanInvite(r.db.QueryRowContext(ctx, query, groupID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invite by group and user: %w", err)
	}

	return inv, nil
}

// Confirm flips owner_confirmed to true. Confirming an already-confirmed
// invite is a no-op.
func (r *Repository) Confirm(ctx context.Context, id uuid.UUID) (*Invite, error) {
	query := `
		UPDATE invites
		SET owner_confirmed = true
		WHERE id = $1
		RETURNING ` + inviteColumns

	inv, err := scanInvite(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to confirm invite: %w", err)
	}

	return inv, nil
}

// CountByGroup counts every invite of a group, confirmed or not
func (r *Repository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM invites WHERE group_id = $1`

	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invites: %w", err)
	}

	return count, nil
}

// CountVerifiedByGroup counts members whose invite is owner-confirmed and
// whose account is active. Invites whose referred user cannot be joined
// simply do not count. This query is the single source of truth for
// "is this group full" across the whole system.
func (r *Repository) CountVerifiedByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM invites i
		JOIN users u ON u.id = i.referred_user_id
		WHERE i.group_id = $1
		  AND i.owner_confirmed = true
		  AND u.status = 'active'
	`

	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count verified members: %w", err)
	}

	return count, nil
}

// HasConfirmedAtLevel reports whether the user holds a confirmed invite
// into some group at the given level. Any one matching invite suffices,
// so this is a single EXISTS query rather than a per-invite lookup.
func (r *Repository) HasConfirmedAtLevel(ctx context.Context, userID uuid.UUID, level int) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM invites i
			JOIN groups g ON g.id = i.group_id
			WHERE i.referred_user_id = $1
			  AND i.owner_confirmed = true
			  AND g.group_number = $2
		)
	`

	if err := r.db.QueryRowContext(ctx, query, userID, level).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check confirmed invites at level: %w", err)
	}

	return exists, nil
}

// ListMembersByGroup retrieves the members of a group with their user
// display fields joined in
func (r *Repository) ListMembersByGroup(ctx context.Context, groupID uuid.UUID) ([]*Member, error) {
	query := `
		SELECT i.id, i.referred_user_id, i.owner_confirmed, u.name, u.email, u.whatsapp, u.status, i.created_at
		FROM invites i
		JOIN users u ON u.id = i.referred_user_id
		WHERE i.group_id = $1
		ORDER BY i.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.InviteID,
			&m.ReferredUserID,
			&m.OwnerConfirmed,
			&m.Name,
			&m.Email,
			&m.Whatsapp,
			&m.Status,
			&m.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
