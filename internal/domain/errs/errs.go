// Package errs defines the error kinds every domain sentinel wraps, so
// adapters can classify failures with errors.Is without knowing each case.
package errs

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidInput      = errors.New("invalid input")
)
