package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor applied to every new password hash.
// The resulting hash embeds its own salt and cost, so verification needs
// no state beyond the stored hash itself.
const HashCost = 10

// ErrPasswordMismatch is returned by VerifyPassword when the password does
// not match the stored hash, or when the stored hash is malformed. The two
// cases are deliberately indistinguishable to callers.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword generates a salted bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// A malformed stored hash is reported as a mismatch rather than an error so
// that a corrupted record cannot crash a login attempt.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
