package model

import "context"

// Identity is the authenticated caller of a request and the token it presented.
type Identity struct {
	User  User
	Token string
}

type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}
