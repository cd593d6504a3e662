package session

import "errors"

var (
	// ErrSessionNotFound is returned when no session matches the token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the session passed its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoSessionInContext is returned when the context carries no session.
	ErrNoSessionInContext = errors.New("no session in context")

	// ErrTokenGeneration is returned when random token bytes cannot be read.
	ErrTokenGeneration = errors.New("failed to generate session token")

	// ErrNoToken is returned by transports when the request carries no token.
	ErrNoToken = errors.New("no session token in request")
)
