// Package authz decides whether an identity may mutate portfolio content.
package authz

import "github.com/dtroode/portfolio/internal/client/session"

// Gate compares identities against the privileged identifier.
type Gate struct {
	privilegedUID string
}

// NewGate returns a gate for privilegedUID. With an empty privilegedUID the
// gate trusts the capability flag issued by the server.
func NewGate(privilegedUID string) Gate {
	return Gate{privilegedUID: privilegedUID}
}

// IsAdmin is evaluated on every call; results must not be cached by callers.
func (g Gate) IsAdmin(identity *session.Identity) bool {
	if identity == nil || identity.UID == "" {
		return false
	}
	if g.privilegedUID == "" {
		return identity.Admin
	}
	return identity.UID == g.privilegedUID
}
