package model

import "errors"

var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")

	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("missing authorization token")
	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid authorization token")
)
