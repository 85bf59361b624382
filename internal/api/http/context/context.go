package context

import (
	"context"

	"github.com/dtroode/portfolio/internal/model"
)

type principalKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the authenticated principal in request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipalFromContext reports false when the request was not authenticated.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(model.Principal)
	if !ok || p.UID == "" {
		return model.Principal{}, false
	}
	return p, true
}
