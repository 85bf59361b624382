package controller

import (
	"context"
	"sync"

	"github.com/dtroode/portfolio/internal/client/session"
)

// LoginPath is the sign-in view.
const LoginPath = "/login"

// Link is a navigation entry.
type Link struct {
	Label string
	Path  string
}

// Navbar shows Login or Logout depending on the identity.
type Navbar struct {
	observable

	deps Deps
	sub  *session.Subscription

	mu       sync.RWMutex
	identity *session.Identity
}

func NewNavbar(deps Deps) *Navbar {
	n := &Navbar{deps: deps}
	n.sub = deps.Provider.Subscribe(func(identity *session.Identity) {
		n.mu.Lock()
		n.identity = identity
		n.mu.Unlock()
		n.changed()
	})
	return n
}

func (n *Navbar) Close() {
	n.sub.Unsubscribe()
}

// Identity returns the identity the navbar last saw.
func (n *Navbar) Identity() *session.Identity {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.identity
}

func (n *Navbar) Links() []Link {
	links := []Link{
		{Label: "Home", Path: "/"},
		{Label: "Projects", Path: "/projects"},
		{Label: "About", Path: "/about"},
	}
	if n.Identity() == nil {
		return append(links, Link{Label: "Login", Path: LoginPath})
	}
	return append(links, Link{Label: "Logout", Path: "/logout"})
}

// Logout signs out and returns to the sign-in view. Repeating it is harmless.
func (n *Navbar) Logout(ctx context.Context) error {
	if err := n.deps.Provider.SignOut(ctx); err != nil {
		notifyErr(n.deps.Notifier, err)
		return err
	}

	if n.deps.Notifier != nil {
		n.deps.Notifier.Notify("Logged out successfully!")
	}
	if n.deps.Navigator != nil {
		n.deps.Navigator.Navigate(LoginPath)
	}
	return nil
}
