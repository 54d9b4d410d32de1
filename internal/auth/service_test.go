package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/internal/user"
	"github.com/boombag/referral/pkg/token"
)

type fakeUserStore struct {
	users   []*user.User
	signups map[string]int
}

func (f *fakeUserStore) Create(ctx context.Context, u *user.User) (*user.User, error) {
	u.CreatedAt = time.Now()
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CountSignupsByInviteCode(ctx context.Context, code string) (int, error) {
	return f.signups[code], nil
}

type fakeGroupStore struct {
	groups []*group.Group
}

func (f *fakeGroupStore) GetByCode(ctx context.Context, code string) (*group.Group, error) {
	for _, g := range f.groups {
		if g.Code == code {
			return g, nil
		}
	}
	return nil, nil
}

type fakeInviteStore struct {
	invites []*invite.Invite
}

func (f *fakeInviteStore) Create(ctx context.Context, groupID, inviterID, referredUserID uuid.UUID) (*invite.Invite, error) {
	inv := &invite.Invite{
		ID:             uuid.New(),
		GroupID:        groupID,
		InviterID:      inviterID,
		ReferredUserID: referredUserID,
	}
	f.invites = append(f.invites, inv)
	return inv, nil
}

func newTestService() (*Service, *fakeUserStore, *fakeGroupStore, *fakeInviteStore) {
	users := &fakeUserStore{signups: make(map[string]int)}
	groups := &fakeGroupStore{}
	invites := &fakeInviteStore{}
	svc := NewService(users, groups, invites, token.NewManager("test-secret"))
	return svc, users, groups, invites
}

func levelOneGroup(groups *fakeGroupStore, code string) *group.Group {
	g := &group.Group{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Code:        code,
		GroupNumber: 1,
	}
	groups.groups = append(groups.groups, g)
	return g
}

func TestRegisterCreatesPendingUserAndInvite(t *testing.T) {
	svc, users, groups, invites := newTestService()
	g := levelOneGroup(groups, "ABCDEF")

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:       "Ana",
		Email:      "Ana@Example.com",
		Password:   "secret1",
		InviteCode: "abcdef",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.Status != user.StatusPending {
		t.Errorf("expected pending status, got %s", resp.User.Status)
	}
	if resp.User.CurrentLevel != 0 {
		t.Errorf("expected level 0 before verification, got %d", resp.User.CurrentLevel)
	}
	if resp.User.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %s", resp.User.Email)
	}

	if len(users.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(users.users))
	}
	stored := users.users[0]
	if stored.InviteCode == nil || *stored.InviteCode != "ABCDEF" {
		t.Errorf("expected invite code ABCDEF on user, got %v", stored.InviteCode)
	}
	if stored.ReferredBy == nil || *stored.ReferredBy != g.OwnerID {
		t.Errorf("expected referred_by to be the group owner")
	}
	if stored.PasswordHash == "secret1" {
		t.Error("password stored in the clear")
	}

	if len(invites.invites) != 1 {
		t.Fatalf("expected 1 invite, got %d", len(invites.invites))
	}
	inv := invites.invites[0]
	if inv.GroupID != g.ID || inv.InviterID != g.OwnerID || inv.ReferredUserID != stored.ID {
		t.Error("invite does not link the user to the code's group")
	}
}

func TestRegisterRequiresInviteCode(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrInviteCodeRequired) {
		t.Errorf("expected ErrInviteCodeRequired, got %v", err)
	}
}

func TestRegisterRejectsUnknownCode(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:       "Ana",
		Email:      "ana@example.com",
		Password:   "secret1",
		InviteCode: "NOSUCH",
	})
	if !errors.Is(err, ErrInviteCodeInvalid) {
		t.Errorf("expected ErrInviteCodeInvalid, got %v", err)
	}
}

func TestRegisterRejectsHigherLevelGroup(t *testing.T) {
	svc, _, groups, _ := newTestService()
	groups.groups = append(groups.groups, &group.Group{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Code:        "LEVEL2",
		GroupNumber: 2,
	})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:       "Ana",
		Email:      "ana@example.com",
		Password:   "secret1",
		InviteCode: "LEVEL2",
	})
	if !errors.Is(err, ErrLevelNotJoinable) {
		t.Errorf("expected ErrLevelNotJoinable, got %v", err)
	}
}

func TestRegisterRejectsFullGroup(t *testing.T) {
	svc, users, groups, _ := newTestService()
	levelOneGroup(groups, "ABCDEF")
	users.signups["ABCDEF"] = group.MaxVerifiedMembers

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:       "Ana",
		Email:      "ana@example.com",
		Password:   "secret1",
		InviteCode: "ABCDEF",
	})
	if !errors.Is(err, ErrGroupFull) {
		t.Errorf("expected ErrGroupFull, got %v", err)
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc, users, groups, _ := newTestService()
	levelOneGroup(groups, "ABCDEF")
	users.users = append(users.users, &user.User{
		ID:    uuid.New(),
		Email: "ana@example.com",
	})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:       "Ana",
		Email:      "ANA@example.com",
		Password:   "secret1",
		InviteCode: "ABCDEF",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, _, _ := newTestService()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	users.users = append(users.users, &user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		Status:       user.StatusActive,
	})

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "Ana@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _, _ := newTestService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	users.users = append(users.users, &user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
	})

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
