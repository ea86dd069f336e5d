package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// PasswordHasher produces and checks password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// User represents a registered user.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterParams contains registration input.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams contains login input.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult is returned by register and login. Token is the plaintext
// token and is never retrievable again.
type AuthResult struct {
	User  User
	Token string
}
