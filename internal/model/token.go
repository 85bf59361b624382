package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(principal Principal) (token string, expiresAt time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (Principal, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
}
