package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

// TokenService issues, resolves and revokes persisted tokens. It composes the
// TokenManager and AuthTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.AuthTokenStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.AuthTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger, now: time.Now}
}

// Issue signs a token of the given kind for userID and stores its hash.
// The returned plaintext is not retrievable afterwards.
func (s *TokenService) Issue(ctx context.Context, userID int64, kind model.TokenKind) (string, error) {
	token, claims, err := s.manager.Generate(userID, kind)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	at := model.AuthToken{
		ID:        claims.ID,
		UserID:    userID,
		Kind:      kind,
		TokenHash: hashToken(token),
		CreatedAt: claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}

	if err := s.store.Create(ctx, at); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

// Resolve returns the id of the user that token belongs to. Any token that
// is malformed, of another kind, unknown, revoked or expired yields
// model.ErrUnauthenticated.
func (s *TokenService) Resolve(ctx context.Context, token string, kind model.TokenKind) (int64, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: failed to parse token", "error", err.Error())
		return 0, model.ErrUnauthenticated
	}

	if claims.Kind != kind {
		s.logger.Debug("Token service: unexpected token kind",
			"expected", kind,
			"got", claims.Kind)
		return 0, model.ErrUnauthenticated
	}

	at, err := s.store.GetByID(ctx, claims.ID)
	if errors.Is(err, model.ErrNotFound) {
		return 0, model.ErrUnauthenticated
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get token: %w", err)
	}

	if err := validateRecord(at, claims, hashToken(token), s.now()); err != nil {
		s.logger.Debug("Token service: token rejected",
			"token_id", at.ID,
			"error", err.Error())
		return 0, model.ErrUnauthenticated
	}

	return at.UserID, nil
}

// Revoke marks token as revoked. Tokens that cannot be parsed are already
// unusable and are ignored.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.manager.Parse(token)
	if err != nil {
		return nil
	}

	if err := s.store.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(at model.AuthToken, claims model.TokenClaims, presentedHash []byte, now time.Time) error {
	if at.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if !now.Before(at.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if at.UserID != claims.UserID || at.Kind != claims.Kind || !equalBytes(at.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
