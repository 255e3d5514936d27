package alumni

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a salted password hash. The salt is embedded
// in the digest, so verification needs no separate parameter. Password
// policy is deliberately left to callers; an empty password hashes fine.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password
// matches the hashed password. A malformed digest is reported as a plain
// mismatch, never an internal failure.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
