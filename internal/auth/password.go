package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt digest of the plain-text password.
// The salt is generated per call and embedded in the digest.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt digest with a plain-text password.
// Malformed digests compare as false rather than erroring.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
