package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, whatsapp, password_hash, role, status, pack_type, current_level, invite_code, referred_by, created_at`

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Whatsapp,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.PackType,
		&u.CurrentLevel,
		&u.InviteCode,
		&u.ReferredBy,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (id, name, email, whatsapp, password_hash, role, status, pack_type, current_level, invite_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		u.ID, u.Name, u.Email, u.Whatsapp, u.PasswordHash, u.Role, u.Status,
		u.PackType, u.CurrentLevel, u.InviteCode, u.ReferredBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// UpdateStatus sets the verification status of a user
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE users SET status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpdateLevel raises a user's current level. Levels only move up, so the
// statement guards against concurrent writers lowering it.
func (r *Repository) UpdateLevel(ctx context.Context, id uuid.UUID, level int) error {
	query := `UPDATE users SET current_level = $2 WHERE id = $1 AND current_level < $2`

	if _, err := r.db.ExecContext(ctx, query, id, level); err != nil {
		return fmt.Errorf("failed to update user level: %w", err)
	}

	return nil
}

// UpdatePackType records the plan a user selected
func (r *Repository) UpdatePackType(ctx context.Context, id uuid.UUID, pack PackType) error {
	query := `UPDATE users SET pack_type = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, pack); err != nil {
		return fmt.Errorf("failed to update pack type: %w", err)
	}

	return nil
}

// UpdateProfile modifies profile fields of a user
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    whatsapp = COALESCE($4, whatsapp)
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, req.Name, req.Email, req.Whatsapp))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return u, nil
}

// ListByStatus retrieves users with the given status, newest first
func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by status: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListActive retrieves all active users
func (r *Repository) ListActive(ctx context.Context) ([]*User, error) {
	return r.ListByStatus(ctx, StatusActive)
}

// ListRecent retrieves the most recently created users
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// CountByStatus counts users with the given status
func (r *Repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE status = $1`

	if err := r.db.QueryRowContext(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users by status: %w", err)
	}

	return count, nil
}

// CountAll counts every user
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users`

	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// CountSignupsByInviteCode counts non-rejected users who signed up with the
// given group code. Used as the signup capacity pre-check.
func (r *Repository) CountSignupsByInviteCode(ctx context.Context, code string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE invite_code = $1 AND status <> 'rejected'`

	if err := r.db.QueryRowContext(ctx, query, code).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count signups by invite code: %w", err)
	}

	return count, nil
}
