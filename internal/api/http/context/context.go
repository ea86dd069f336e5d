package context

import (
	"context"

	"github.com/dtroode/taskkeeper/internal/model"
)

type identityKey struct{}

// Manager stores the authenticated identity of a request in its context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

var _ model.ContextManager = (*Manager)(nil)

// SetIdentityToContext returns a copy of ctx carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the identity stored in ctx, if any.
// An identity without a user id is treated as absent.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	if !ok || identity.User.ID <= 0 {
		return model.Identity{}, false
	}
	return identity, true
}
