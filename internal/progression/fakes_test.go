package progression

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/internal/user"
)

// memStore is an in-memory stand-in for the persistent store. It backs all
// collaborator interfaces through small adapters so engine and broker
// tests run against one consistent state, with the real group registry
// layered on top.
type memStore struct {
	users   map[uuid.UUID]*user.User
	groups  []*group.Group
	invites []*invite.Invite
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*user.User)}
}

func (m *memStore) addUser(status user.Status, level int) *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		Status:       status,
		CurrentLevel: level,
		CreatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addGroup(ownerID uuid.UUID, number int) *group.Group {
	code, _ := group.NewCode()
	g := &group.Group{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Code:        code,
		GroupNumber: number,
		CreatedAt:   time.Now(),
	}
	m.groups = append(m.groups, g)
	return g
}

func (m *memStore) addInvite(g *group.Group, referred uuid.UUID, confirmed bool) *invite.Invite {
	inv := &invite.Invite{
		ID:             uuid.New(),
		GroupID:        g.ID,
		InviterID:      g.OwnerID,
		ReferredUserID: referred,
		OwnerConfirmed: confirmed,
		CreatedAt:      time.Now(),
	}
	m.invites = append(m.invites, inv)
	return inv
}

func (m *memStore) groupsOf(ownerID uuid.UUID) []*group.Group {
	var owned []*group.Group
	for _, g := range m.groups {
		if g.OwnerID == ownerID {
			owned = append(owned, g)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].GroupNumber < owned[j].GroupNumber })
	return owned
}

// UserStore

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.users[id], nil
}

func (m *memStore) UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) error {
	if u, ok := m.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (m *memStore) UpdateLevel(ctx context.Context, id uuid.UUID, level int) error {
	if u, ok := m.users[id]; ok && u.CurrentLevel < level {
		u.CurrentLevel = level
	}
	return nil
}

func (m *memStore) ListActive(ctx context.Context) ([]*user.User, error) {
	var active []*user.User
	for _, u := range m.users {
		if u.Status == user.StatusActive {
			active = append(active, u)
		}
	}
	return active, nil
}

// MemberLedger

func (m *memStore) CountVerifiedMembers(ctx context.Context, groupID uuid.UUID) (int, error) {
	count := 0
	for _, inv := range m.invites {
		if inv.GroupID != groupID || !inv.OwnerConfirmed {
			continue
		}
		if u, ok := m.users[inv.ReferredUserID]; ok && u.Status == user.StatusActive {
			count++
		}
	}
	return count, nil
}

// groupStoreFake satisfies group.Store so the real registry runs on top
// of the in-memory state.
type groupStoreFake struct{ m *memStore }

func (f groupStoreFake) Create(ctx context.Context, ownerID uuid.UUID, code string, groupNumber int) (*group.Group, error) {
	for _, g := range f.m.groups {
		if g.OwnerID == ownerID && g.GroupNumber == groupNumber {
			return nil, group.ErrDuplicate
		}
	}
	g := &group.Group{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Code:        code,
		GroupNumber: groupNumber,
		CreatedAt:   time.Now(),
	}
	f.m.groups = append(f.m.groups, g)
	return g, nil
}

func (f groupStoreFake) GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	for _, g := range f.m.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (f groupStoreFake) GetByCode(ctx context.Context, code string) (*group.Group, error) {
	for _, g := range f.m.groups {
		if g.Code == code {
			return g, nil
		}
	}
	return nil, nil
}

func (f groupStoreFake) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*group.Group, error) {
	return f.m.groupsOf(ownerID), nil
}

// inviteStoreFake satisfies InviteStore.
type inviteStoreFake struct{ m *memStore }

func (f inviteStoreFake) Create(ctx context.Context, groupID, inviterID, referredUserID uuid.UUID) (*invite.Invite, error) {
	for _, inv := range f.m.invites {
		if inv.GroupID == groupID && inv.ReferredUserID == referredUserID {
			return nil, invite.ErrAlreadyExists
		}
	}
	inv := &invite.Invite{
		ID:             uuid.New(),
		GroupID:        groupID,
		InviterID:      inviterID,
		ReferredUserID: referredUserID,
		CreatedAt:      time.Now(),
	}
	f.m.invites = append(f.m.invites, inv)
	return inv, nil
}

func (f inviteStoreFake) GetByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*invite.Invite, error) {
	for _, inv := range f.m.invites {
		if inv.GroupID == groupID && inv.ReferredUserID == userID {
			return inv, nil
		}
	}
	return nil, nil
}

func (f inviteStoreFake) Confirm(ctx context.Context, id uuid.UUID) (*invite.Invite, error) {
	for _, inv := range f.m.invites {
		if inv.ID == id {
			inv.OwnerConfirmed = true
			return inv, nil
		}
	}
	return nil, nil
}

func (f inviteStoreFake) HasConfirmedAtLevel(ctx context.Context, userID uuid.UUID, level int) (bool, error) {
	for _, inv := range f.m.invites {
		if inv.ReferredUserID != userID || !inv.OwnerConfirmed {
			continue
		}
		for _, g := range f.m.groups {
			if g.ID == inv.GroupID && g.GroupNumber == level {
				return true, nil
			}
		}
	}
	return false, nil
}

func newTestEngine(m *memStore) *Engine {
	registry := group.NewService(groupStoreFake{m})
	return NewEngine(m, registry, inviteStoreFake{m}, m)
}

func newTestBroker(m *memStore) *Broker {
	registry := group.NewService(groupStoreFake{m})
	return NewBroker(m, registry, inviteStoreFake{m}, m)
}
