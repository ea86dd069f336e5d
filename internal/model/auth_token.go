package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenKind separates API bearer tokens from page-flow session tokens.
type TokenKind string

const (
	TokenKindAPI     TokenKind = "api"
	TokenKindSession TokenKind = "session"
)

// AuthTokenStore persists issued tokens so they can be revoked.
type AuthTokenStore interface {
	Create(ctx context.Context, token AuthToken) error
	GetByID(ctx context.Context, id uuid.UUID) (AuthToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

// AuthToken is the stored form of an issued token. Only its SHA-256 hash is kept.
type AuthToken struct {
	ID        uuid.UUID
	UserID    int64
	Kind      TokenKind
	TokenHash []byte
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}
