package utils

import "golang.org/x/crypto/bcrypt"

// VerifyPassword safely compares a stored bcrypt hash and a plain password.
// Hashes written by PHP's password_hash use the same bcrypt format, so
// accounts provisioned by the legacy system verify unchanged.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
