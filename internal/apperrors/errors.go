// Package apperrors defines the sentinel errors shared across services,
// storage and handlers. Callers compare with errors.Is and map to HTTP
// statuses at the boundary.
package apperrors

import "errors"

var (
	// ErrUserNotFound is returned when a referenced username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrMessageNotFound is returned when a message id does not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrUsernameTaken is returned when registering an already-used username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUnauthorized is returned when a request carries no usable credential.
	ErrUnauthorized = errors.New("missing or invalid token")

	// ErrInvalidToken is returned when a token fails signature or shape checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a token's expiry claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrForbidden is returned when a valid identity lacks privilege for the
	// target resource.
	ErrForbidden = errors.New("forbidden")
)
