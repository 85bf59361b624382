package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned for any failed sign-in, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden is returned when an authenticated principal lacks admin rights.
	ErrForbidden = errors.New("admin privileges required")
	// ErrValidation is returned when a required field is missing.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidFile is returned when an uploaded file has an unsupported type.
	ErrInvalidFile = errors.New("unsupported file type")
	// ErrUploadDisabled is returned when resume uploads are served from static files.
	ErrUploadDisabled = errors.New("resume upload is disabled")
)
