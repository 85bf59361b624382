package controller

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/dtroode/portfolio/internal/client/clienterr"
)

// LandingPath is where a successful sign-in leads.
const LandingPath = "/"

// Login is the sign-in form controller.
type Login struct {
	deps       Deps
	submitting atomic.Bool
}

func NewLogin(deps Deps) *Login {
	return &Login{deps: deps}
}

// Submit signs in. Any failure yields exactly one generic message.
func (l *Login) Submit(ctx context.Context, email, password string) error {
	if !l.submitting.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer l.submitting.Store(false)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := &clienterr.CredentialError{}
		notifyErr(l.deps.Notifier, err)
		return err
	}

	if _, err := l.deps.Provider.SignIn(ctx, email, password); err != nil {
		notifyErr(l.deps.Notifier, err)
		return err
	}

	if l.deps.Notifier != nil {
		l.deps.Notifier.Notify("Logged in successfully!")
	}
	if l.deps.Navigator != nil {
		l.deps.Navigator.Navigate(LandingPath)
	}
	return nil
}
