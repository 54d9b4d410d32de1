package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicate is returned when an insert collides with the
// (owner_id, group_number) or code unique constraints
var ErrDuplicate = errors.New("group already exists")

const groupColumns = `id, owner_id, code, group_number, created_at`

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanGroup(row interface{ Scan(dest ...any) error }) (*Group, error) {
	g := &Group{}
	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.Code,
		&g.GroupNumber,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Create inserts a new group
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, code string, groupNumber int) (*Group, error) {
	query := `
		INSERT INTO groups (id, owner_id, code, group_number)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + groupColumns

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, uuid.New(), ownerID, code, groupNumber))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return g, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// GetByCode retrieves a group by its invite code
func (r *Repository) GetByCode(ctx context.Context, code string) (*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE code = $1`

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group by code: %w", err)
	}

	return g, nil
}

// ListByOwner retrieves all groups of an owner, ascending by group number
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE owner_id = $1 ORDER BY group_number ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// CountAll counts every group
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM groups`

	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}

	return count, nil
}

// ListRecent retrieves the most recently created groups
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
