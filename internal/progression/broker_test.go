package progression

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/user"
)

func TestJoinCreatesUnconfirmedInvite(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)
	ctx := context.Background()

	owner := m.addUser(user.StatusActive, 1)
	g := m.addGroup(owner.ID, 1)

	joiner := m.addUser(user.StatusActive, 1)

	inv, err := broker.Join(ctx, joiner.ID, g.Code)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	if inv.OwnerConfirmed {
		t.Error("a fresh join must not be owner-confirmed")
	}
	if inv.GroupID != g.ID {
		t.Errorf("expected group %s, got %s", g.ID, inv.GroupID)
	}
	if inv.InviterID != owner.ID {
		t.Errorf("expected inviter %s, got %s", owner.ID, inv.InviterID)
	}
	if inv.ReferredUserID != joiner.ID {
		t.Errorf("expected referred user %s, got %s", joiner.ID, inv.ReferredUserID)
	}

	// Joining does not count toward the group fill until confirmed.
	verified, _ := m.CountVerifiedMembers(ctx, g.ID)
	if verified != 0 {
		t.Errorf("expected 0 verified members after join, got %d", verified)
	}
}

func TestJoinUserNotFound(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)

	owner := m.addUser(user.StatusActive, 1)
	g := m.addGroup(owner.ID, 1)

	_, err := broker.Join(context.Background(), uuid.New(), g.Code)
	if !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestJoinGroupNotFound(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)

	joiner := m.addUser(user.StatusActive, 1)

	_, err := broker.Join(context.Background(), joiner.ID, "ZZZZZZ")
	if !errors.Is(err, group.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestJoinLevelMismatch(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)

	owner := m.addUser(user.StatusActive, 2)
	g2 := m.addGroup(owner.ID, 2)

	joiner := m.addUser(user.StatusActive, 1)

	_, err := broker.Join(context.Background(), joiner.ID, g2.Code)
	if !errors.Is(err, ErrLevelMismatch) {
		t.Errorf("expected ErrLevelMismatch, got %v", err)
	}
}

func TestJoinGroupFull(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)
	ctx := context.Background()

	owner := m.addUser(user.StatusActive, 1)
	g := m.addGroup(owner.ID, 1)
	for i := 0; i < group.MaxVerifiedMembers; i++ {
		member := m.addUser(user.StatusActive, 1)
		m.addInvite(g, member.ID, true)
	}

	joiner := m.addUser(user.StatusActive, 1)

	_, err := broker.Join(ctx, joiner.ID, g.Code)
	if !errors.Is(err, ErrGroupFull) {
		t.Errorf("expected ErrGroupFull, got %v", err)
	}
}

func TestJoinAlmostFullGroupSucceeds(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)
	ctx := context.Background()

	owner := m.addUser(user.StatusActive, 1)
	g := m.addGroup(owner.ID, 1)

	// Three verified plus one unconfirmed: still room, only verified
	// members count toward the cap.
	for i := 0; i < 3; i++ {
		member := m.addUser(user.StatusActive, 1)
		m.addInvite(g, member.ID, true)
	}
	waiting := m.addUser(user.StatusActive, 1)
	m.addInvite(g, waiting.ID, false)

	joiner := m.addUser(user.StatusActive, 1)

	if _, err := broker.Join(ctx, joiner.ID, g.Code); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
}

func TestJoinAlreadyMember(t *testing.T) {
	m := newMemStore()
	broker := newTestBroker(m)
	ctx := context.Background()

	owner := m.addUser(user.StatusActive, 1)
	g := m.addGroup(owner.ID, 1)

	joiner := m.addUser(user.StatusActive, 1)
	m.addInvite(g, joiner.ID, false)

	_, err := broker.Join(ctx, joiner.ID, g.Code)
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}
