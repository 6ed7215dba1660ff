package domain

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor used by every existing account; raising
// it requires a rehash-on-login migration first.
const bcryptCost = 10

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 6

// HashPassword derives a salted bcrypt hash from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// Malformed stored hashes verify as false rather than erroring.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
