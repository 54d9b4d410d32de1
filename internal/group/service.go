package group

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrDuplicateLevel = errors.New("owner already has a group at this level")
	ErrCapExceeded    = errors.New("owner already holds the maximum number of groups")
)

// Store is the persistence surface the registry needs
type Store interface {
	Create(ctx context.Context, ownerID uuid.UUID, code string, groupNumber int) (*Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Group, error)
	GetByCode(ctx context.Context, code string) (*Group, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Group, error)
}

// Service is the group registry: it creates, looks up and enumerates
// groups per owner, enforcing the 3-group cap and (owner, level) uniqueness
type Service struct {
	store Store
}

// NewService creates a new group registry
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create creates a group at the given level for an owner. The cap check is
// an optimistic pre-check; the store's unique constraint settles races.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, groupNumber int) (*Group, error) {
	existing, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if len(existing) >= MaxGroups {
		return nil, ErrCapExceeded
	}
	for _, g := range existing {
		if g.GroupNumber == groupNumber {
			return nil, ErrDuplicateLevel
		}
	}

	code, err := NewCode()
	if err != nil {
		return nil, err
	}

	g, err := s.store.Create(ctx, ownerID, code, groupNumber)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicateLevel
		}
		return nil, err
	}

	return g, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	g, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// GetByCode retrieves a group by its invite code
func (s *Service) GetByCode(ctx context.Context, code string) (*Group, error) {
	g, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// ListByOwner retrieves an owner's groups, ascending by group number
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Group, error) {
	return s.store.ListByOwner(ctx, ownerID)
}
