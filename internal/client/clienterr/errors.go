// Package clienterr holds the error taxonomy shared by the admin client packages.
package clienterr

import (
	"errors"
	"fmt"
)

// NetworkError is a failed or rejected round trip to the backend.
// Status is zero when no response was received.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server responded %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthorizationError is returned before any request when the current identity may not mutate.
type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized to %s", e.Action)
}

// ValidationError reports a missing required input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// CredentialError is the single generic sign-in failure.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string { return "invalid email or password" }

func (e *CredentialError) Unwrap() error { return e.Err }

// Op names the mutation an OperationError belongs to.
type Op string

const (
	OpUpload Op = "upload"
	OpDelete Op = "delete"
)

// OperationError scopes a NetworkError to the upload or delete that caused it.
type OperationError struct {
	Op  Op
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// IsUpload reports whether err is an UploadError.
func IsUpload(err error) bool { return isOp(err, OpUpload) }

// IsDelete reports whether err is a DeleteError.
func IsDelete(err error) bool { return isOp(err, OpDelete) }

func isOp(err error, op Op) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.Op == op
}

// Message is the text shown to the user for err.
func Message(err error) string {
	var (
		netErr  *NetworkError
		authErr *AuthorizationError
		valErr  *ValidationError
		credErr *CredentialError
		opErr   *OperationError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &credErr):
		return "Invalid email or password."
	case errors.As(err, &authErr):
		return "You are not authorized to do that."
	case errors.As(err, &valErr):
		return fmt.Sprintf("Please provide %s.", valErr.Field)
	case errors.As(err, &opErr):
		switch opErr.Op {
		case OpUpload:
			return "Upload failed"
		case OpDelete:
			return "Delete failed"
		}
		return "Operation failed"
	case errors.As(err, &netErr):
		return "Network error, please try again."
	default:
		return "Something went wrong."
	}
}
