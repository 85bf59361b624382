package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Upsert(ctx context.Context, user User) (User, error)
}

// User represents an account able to sign in with email and password.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the identity the user acts as once authenticated.
func (u User) Principal() Principal {
	return Principal{UID: u.ID.String(), Email: u.Email, Admin: u.IsAdmin}
}
