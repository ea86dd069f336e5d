package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims are the verified contents of a token.
type TokenClaims struct {
	ID        uuid.UUID
	UserID    int64
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager signs and verifies tokens.
type TokenManager interface {
	Generate(userID int64, kind TokenKind) (string, TokenClaims, error)
	Parse(token string) (TokenClaims, error)
}
