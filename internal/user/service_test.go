package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeStore struct {
	users map[uuid.UUID]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uuid.UUID]*User)}
}

func (f *fakeStore) addUser() *User {
	u := &User{
		ID:     uuid.New(),
		Name:   "Test User",
		Email:  uuid.NewString() + "@example.com",
		Role:   RoleUser,
		Status: StatusActive,
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.users[id], nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Whatsapp != nil {
		u.Whatsapp = req.Whatsapp
	}
	return u, nil
}

func (f *fakeStore) UpdatePackType(ctx context.Context, id uuid.UUID, pack PackType) error {
	if u, ok := f.users[id]; ok {
		u.PackType = &pack
	}
	return nil
}

func TestGetByIDNotFound(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	u := store.addUser()

	name := "Renamed"
	updated, err := service.UpdateProfile(context.Background(), u.ID, &UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
	if updated.Email != u.Email {
		t.Errorf("email must not change when omitted, got %s", updated.Email)
	}
}

func TestUpdateProfileNotFound(t *testing.T) {
	service := NewService(newFakeStore())

	name := "Renamed"
	_, err := service.UpdateProfile(context.Background(), uuid.New(), &UpdateProfileRequest{Name: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSelectPack(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	u := store.addUser()

	updated, err := service.SelectPack(context.Background(), u.ID, PackGold)
	if err != nil {
		t.Fatalf("SelectPack failed: %v", err)
	}
	if updated.PackType == nil || *updated.PackType != PackGold {
		t.Errorf("expected gold pack, got %v", updated.PackType)
	}
}

func TestSelectPackInvalid(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	u := store.addUser()

	_, err := service.SelectPack(context.Background(), u.ID, PackType("platinum"))
	if !errors.Is(err, ErrInvalidPack) {
		t.Errorf("expected ErrInvalidPack, got %v", err)
	}
	if u.PackType != nil {
		t.Errorf("pack must not be stored on rejection, got %v", u.PackType)
	}
}

func TestSelectPackNotFound(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.SelectPack(context.Background(), uuid.New(), PackStarter)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
