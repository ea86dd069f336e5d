package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/taskkeeper/internal/model"
)

// Claims represents JWT claims with token kind and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Kind   string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a token manager signing with secretKey; issued tokens live for ttl.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

var _ model.TokenManager = (*JWT)(nil)

// Generate signs a new token for userID. The returned claims carry the jti
// that identifies the token in storage.
func (j *JWT) Generate(userID int64, kind model.TokenKind) (string, model.TokenClaims, error) {
	now := j.now()
	id := uuid.New()
	expiresAt := now.Add(j.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Kind:   string(kind),
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, model.TokenClaims{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates signature and expiry and returns the claims.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, model.ErrTokenExpired
		}
		return model.TokenClaims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.TokenClaims{}, fmt.Errorf("token is invalid")
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("invalid token id: %w", err)
	}
	if claims.UserID <= 0 {
		return model.TokenClaims{}, fmt.Errorf("invalid token subject")
	}

	result := model.TokenClaims{
		ID:     id,
		UserID: claims.UserID,
		Kind:   model.TokenKind(claims.Kind),
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}
