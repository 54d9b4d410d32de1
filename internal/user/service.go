package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidPack  = errors.New("invalid pack type")
)

// Store is the persistence surface the service needs
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error)
	UpdatePackType(ctx context.Context, id uuid.UUID, pack PackType) error
}

// Service handles user profile business logic
type Service struct {
	store Store
}

// NewService creates a new user service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetByID retrieves a user by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile modifies a user's profile fields
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	u, err := s.store.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// SelectPack records the plan a user selected
func (s *Service) SelectPack(ctx context.Context, id uuid.UUID, pack PackType) (*User, error) {
	if pack != PackStarter && pack != PackGold {
		return nil, ErrInvalidPack
	}

	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if err := s.store.UpdatePackType(ctx, id, pack); err != nil {
		return nil, err
	}

	u.PackType = &pack
	return u, nil
}
