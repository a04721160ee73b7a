package apperr

import "errors"

// Sentinel error kinds shared by repositories, services and the HTTP layer.
// Services return the most specific kind; only the HTTP boundary translates
// a kind into a status code and a user-facing message.
var (
	// ErrValidation marks malformed input caught before any persistence call.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound covers both a missing entity and an entity outside the
	// caller's ownership scope. The two cases are indistinguishable on
	// purpose so the existence of other tenants' data never leaks.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate email, duplicate
	// per-owner task title), whether caught by the application pre-check or
	// by the store's unique index at write time.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials is the single login failure: unknown email and
	// wrong password collapse into it to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken marks a missing, malformed, forged or expired token.
	ErrInvalidToken = errors.New("invalid token")
)
