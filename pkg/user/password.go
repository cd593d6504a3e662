package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances hashing strength against sign-in latency; the
// default cost is adequate for session-cookie authentication.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash.
// Returns ErrInvalidCredentials on mismatch.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
