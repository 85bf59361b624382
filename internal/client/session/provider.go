// Package session owns the signed-in identity of the admin client and
// pushes every change to its subscribers.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/portfolio/internal/client/clienterr"
	"github.com/dtroode/portfolio/internal/logger"
)

// Identity is the signed-in user as seen by the client.
type Identity struct {
	Token        string
	RefreshToken string
	UID          string
	Email        string
	// Admin is the capability flag issued by the server.
	Admin     bool
	ExpiresAt time.Time
}

// Authenticator exchanges credentials with an identity backend.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context, identity Identity) error
}

// Listener receives the current identity, or nil when signed out.
// Listeners run under the provider's delivery lock and must not call
// Subscribe, Unsubscribe, SignIn or SignOut.
type Listener func(identity *Identity)

// Provider is the single writer of the current identity.
type Provider struct {
	auth   Authenticator
	logger *logger.Logger

	mu        sync.RWMutex
	identity  *Identity
	listeners map[uint64]Listener
	nextID    uint64

	// notifyMu keeps deliveries in the order identities were set.
	notifyMu sync.Mutex
}

func NewProvider(auth Authenticator, logger *logger.Logger) *Provider {
	return &Provider{
		auth:      auth,
		logger:    logger,
		listeners: make(map[uint64]Listener),
	}
}

// Subscribe registers l and immediately delivers the current identity to it.
func (p *Provider) Subscribe(l Listener) *Subscription {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	current := copyIdentity(p.identity)
	p.mu.Unlock()

	l(current)

	return &Subscription{unsubscribe: func() {
		p.notifyMu.Lock()
		defer p.notifyMu.Unlock()

		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}}
}

// Current returns a snapshot of the identity, nil when signed out.
func (p *Provider) Current() *Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copyIdentity(p.identity)
}

// Token returns the bearer token of the current identity.
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.identity == nil {
		return ""
	}
	return p.identity.Token
}

// UID returns the uid of the current identity.
func (p *Provider) UID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.identity == nil {
		return ""
	}
	return p.identity.UID
}

// SignIn authenticates and publishes the new identity. Every failure is
// reported as a single *clienterr.CredentialError.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	identity, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		p.logger.Debug("Session provider: sign-in failed", "error", err)
		return nil, &clienterr.CredentialError{Err: err}
	}

	p.set(&identity)
	return copyIdentity(&identity), nil
}

// SignOut clears the identity. Signing out while signed out does nothing.
func (p *Provider) SignOut(ctx context.Context) error {
	current := p.Current()
	if current == nil {
		return nil
	}

	if err := p.auth.SignOut(ctx, *current); err != nil {
		p.logger.Warn("Session provider: remote sign-out failed", "error", err)
	}

	p.set(nil)
	return nil
}

func (p *Provider) set(identity *Identity) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	p.identity = copyIdentity(identity)
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(copyIdentity(identity))
	}
}

func copyIdentity(identity *Identity) *Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}

// Subscription deregisters a Listener.
type Subscription struct {
	once        sync.Once
	unsubscribe func()
}

// Unsubscribe stops deliveries. It waits for an in-flight delivery, so no
// listener call happens after it returns. Calling it more than once is safe.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}
