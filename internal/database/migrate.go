package database

import (
	"database/sql"
	"fmt"
)

// The unique constraints below are load-bearing: concurrent joins and
// concurrent group creation both rely on the store rejecting duplicates,
// with in-memory counts acting only as optimistic pre-checks.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	whatsapp VARCHAR(20),
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(10) NOT NULL DEFAULT 'user',
	status VARCHAR(10) NOT NULL DEFAULT 'pending',
	pack_type VARCHAR(10),
	current_level INT NOT NULL DEFAULT 0,
	invite_code VARCHAR(6),
	referred_by UUID REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT users_status_check CHECK (status IN ('pending', 'active', 'rejected')),
	CONSTRAINT users_role_check CHECK (role IN ('user', 'admin'))
);

CREATE TABLE IF NOT EXISTS groups (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id),
	code VARCHAR(6) NOT NULL UNIQUE,
	group_number INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT groups_number_check CHECK (group_number BETWEEN 1 AND 3),
	CONSTRAINT groups_owner_number_unique UNIQUE (owner_id, group_number)
);

CREATE TABLE IF NOT EXISTS invites (
	id UUID PRIMARY KEY,
	group_id UUID NOT NULL REFERENCES groups(id),
	inviter_id UUID NOT NULL REFERENCES users(id),
	referred_user_id UUID NOT NULL REFERENCES users(id),
	owner_confirmed BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT invites_group_user_unique UNIQUE (group_id, referred_user_id)
);

CREATE INDEX IF NOT EXISTS idx_invites_group_id ON invites(group_id);
CREATE INDEX IF NOT EXISTS idx_invites_referred_user_id ON invites(referred_user_id);
CREATE INDEX IF NOT EXISTS idx_groups_owner_id ON groups(owner_id);
`

// Migrate creates the schema if it does not exist yet
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
