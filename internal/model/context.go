package model

import (
	"context"
	"time"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UID   string
	Email string
	Admin bool
}

// ContextManager stores and loads the request principal.
type ContextManager interface {
	SetPrincipalToContext(ctx context.Context, principal Principal) context.Context
	GetPrincipalFromContext(ctx context.Context) (Principal, bool)
}

// IdentityVerifier resolves a bearer token into a principal.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// Session is the result of a successful sign-in or refresh.
type Session struct {
	Principal    Principal
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
