package guard

import "errors"

var (
	// ErrUnauthenticated is returned when the request carries no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNoActiveTenant is returned when an authenticated user has no
	// workspace to act in.
	ErrNoActiveTenant = errors.New("no active tenant")

	// ErrForbidden is returned when the user lacks membership or role.
	// Non-membership and insufficient role are deliberately
	// indistinguishable to callers.
	ErrForbidden = errors.New("forbidden")
)
