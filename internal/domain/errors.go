package domain

import (
	"errors"
	"fmt"
)

// Stable error kinds returned by the service layer. The transport layer maps
// these to status codes; they are never retried automatically.
var (
	// ErrValidation indicates a missing or empty required field.
	ErrValidation = errors.New("missing required field")

	// ErrEmailTaken indicates a signup attempt with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound indicates an unknown email or user id.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a missing, malformed, tampered or expired
	// session token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidResetCode indicates an absent or mismatched reset code.
	ErrInvalidResetCode = errors.New("invalid reset code")

	// ErrResetCodeExpired indicates a matching reset code past its expiry.
	ErrResetCodeExpired = errors.New("reset code expired")
)

// StorageError wraps an I/O failure in the backing store. First-boot "file
// missing" is not a StorageError; the store initializes an empty document
// instead.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failed operation name
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
