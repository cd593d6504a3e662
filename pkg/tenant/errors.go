package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrSlugTaken is returned when creating a tenant with an already used slug.
	ErrSlugTaken = errors.New("tenant slug already taken")
)
