package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/taskkeeper/internal/model"
)

var _ model.AuthTokenStore = (*AuthTokenRepository)(nil)

type AuthTokenRepository struct {
	db *Connection
}

func NewAuthTokenRepository(db *Connection) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) Create(ctx context.Context, token model.AuthToken) error {
	const query = `
        INSERT INTO auth_tokens (id, user_id, kind, token_hash, created_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, string(token.Kind), token.TokenHash, token.CreatedAt, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (model.AuthToken, error) {
	const query = `
        SELECT id, user_id, kind, token_hash, created_at, expires_at, revoked_at
        FROM auth_tokens WHERE id = $1
    `

	var (
		token model.AuthToken
		kind  string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&token.ID, &token.UserID, &kind, &token.TokenHash, &token.CreatedAt, &token.ExpiresAt, &token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuthToken{}, model.ErrNotFound
		}
		return model.AuthToken{}, fmt.Errorf("failed to get auth token by id: %w", err)
	}
	token.Kind = model.TokenKind(kind)

	return token, nil
}

// Revoke marks the token revoked. Revoking an already revoked or unknown token is a no-op.
func (r *AuthTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE auth_tokens SET revoked_at = NOW()
        WHERE id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}
	return nil
}
