// Package auth provides password hashing and login token generation for the
// single admin account.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// tokenLength is the length of generated login tokens.
const tokenLength = 32

// HashPassword returns the hex-encoded SHA-256 digest of a password.
// This is a placeholder scheme for a single-operator deployment; the stored
// hash lives only in the local database.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether a password matches a stored hash.
// The comparison is constant-time.
func VerifyPassword(password, hash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// GenerateToken returns a fresh opaque bearer token.
func GenerateToken() (string, error) {
	token, err := gonanoid.New(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
