package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token fails validation
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the identity of an authenticated user
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and validates session tokens
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager with the given signing secret
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: 72 * time.Hour}
}

// Generate issues a signed token for the given user
func (m *Manager) Generate(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse validates a token and returns the user ID and role it carries
func (m *Manager) Parse(tokenString string) (uuid.UUID, string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	return userID, claims.Role, nil
}
