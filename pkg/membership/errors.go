package membership

import "errors"

var (
	// ErrNotMember is returned when a user does not belong to a tenant.
	ErrNotMember = errors.New("user is not a member of tenant")

	// ErrAlreadyMember is returned when creating a duplicate membership.
	ErrAlreadyMember = errors.New("user is already a member of tenant")

	// ErrUnknownRole is returned when parsing an unrecognized role name.
	ErrUnknownRole = errors.New("unknown role")
)
