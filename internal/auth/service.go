package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/internal/user"
	"github.com/boombag/referral/pkg/token"
)

// Common errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInviteCodeRequired = errors.New("invite code is required")
	ErrInviteCodeInvalid  = errors.New("invite code does not match any group")
	ErrLevelNotJoinable   = errors.New("only level-1 groups can be joined at signup")
	ErrGroupFull          = errors.New("group is full")
)

// UserStore is the user persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	CountSignupsByInviteCode(ctx context.Context, code string) (int, error)
}

// GroupStore resolves invite codes to groups; lookups return nil when absent
type GroupStore interface {
	GetByCode(ctx context.Context, code string) (*group.Group, error)
}

// InviteStore creates the membership link recorded at signup
type InviteStore interface {
	Create(ctx context.Context, groupID, inviterID, referredUserID uuid.UUID) (*invite.Invite, error)
}

// Service handles signup and login
type Service struct {
	users   UserStore
	groups  GroupStore
	invites InviteStore
	tokens  *token.Manager
}

// NewService creates a new auth service
func NewService(users UserStore, groups GroupStore, invites InviteStore, tokens *token.Manager) *Service {
	return &Service{users: users, groups: groups, invites: invites, tokens: tokens}
}

// Register creates a pending user linked to the level-1 group whose code
// they signed up with, plus the unconfirmed invite recording that link.
// The user stays at level 0 until an admin verifies them.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))

	if code == "" {
		return nil, ErrInviteCodeRequired
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	g, err := s.groups.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrInviteCodeInvalid
	}
	if g.GroupNumber != 1 {
		return nil, ErrLevelNotJoinable
	}

	// Signup capacity pre-check: rejected accounts free their seat.
	signups, err := s.users.CountSignupsByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if signups >= group.MaxVerifiedMembers {
		return nil, ErrGroupFull
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		Whatsapp:     req.Whatsapp,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		Status:       user.StatusPending,
		CurrentLevel: 0,
		InviteCode:   &code,
		ReferredBy:   &g.OwnerID,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	if _, err := s.invites.Create(ctx, g.ID, g.OwnerID, created.ID); err != nil {
		return nil, err
	}

	signed, err := s.tokens.Generate(created.ID, string(created.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: signed, User: created.ToResponse()}, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: signed, User: u.ToResponse()}, nil
}
