package token

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndParse(t *testing.T) {
	manager := NewManager("test-secret")
	userID := uuid.New()

	signed, err := manager.Generate(userID, "admin")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsedID, role, err := manager.Parse(signed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsedID != userID {
		t.Errorf("expected user ID %s, got %s", userID, parsedID)
	}
	if role != "admin" {
		t.Errorf("expected role admin, got %s", role)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret")

	_, _, err := manager.Parse("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a").Generate(uuid.New(), "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, _, err = NewManager("secret-b").Parse(signed)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
