package user

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when creating a user with an already registered email.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials is returned when a password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrHashingFailed is returned when the password hash cannot be computed.
	ErrHashingFailed = errors.New("failed to hash password")
)
