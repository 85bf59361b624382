// Package controller holds the view controllers of the admin client. Each
// controller owns its local state, follows the session provider and talks to
// the API through the resource client.
package controller

import (
	"errors"
	"sync"

	"github.com/dtroode/portfolio/internal/client/clienterr"
)

// ErrBusy is returned when a submission is already in flight on the same controller.
var ErrBusy = errors.New("submission in progress")

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// observable fans state changes out to a render hook.
type observable struct {
	mu       sync.Mutex
	onChange func()
}

// OnChange sets the function called after every state change.
func (o *observable) OnChange(fn func()) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

func (o *observable) changed() {
	o.mu.Lock()
	fn := o.onChange
	o.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func notifyErr(n Notifier, err error) {
	if n != nil && err != nil {
		n.Notify(clienterr.Message(err))
	}
}
