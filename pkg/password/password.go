// Package password implements the salted credential scheme used by the
// ordering system: PBKDF2-SHA256 keyed with a per-user random salt,
// stored as fixed-length hex strings.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltLength is the exact length of a stored salt, enforced by the
	// user validator.
	SaltLength = 64
	// HashLength is the exact length of a stored password hash (32
	// derived bytes, hex encoded).
	HashLength = 64
	// RotationInterval is how far nextPasswordChange advances after a
	// successful password change: six average Gregorian months.
	RotationInterval = 6 * 2629800 * time.Second

	iterations = 4096
	keyBytes   = 32
)

const saltAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Hash derives the stored hash for a plaintext password and salt.
func Hash(plaintext, salt string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key)
}

// Verify reports whether plaintext, salted and hashed, equals the stored
// hash. The comparison is constant time.
func Verify(plaintext, salt, storedHash string) bool {
	derived := Hash(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1
}

// NewSalt returns a random alphanumeric salt of the given length.
func NewSalt(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("password: crypto/rand unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf)
}
