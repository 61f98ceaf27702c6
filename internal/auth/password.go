package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPBKDF2Iterations is the work factor used unless configured otherwise.
	DefaultPBKDF2Iterations = 100000

	saltBytes    = 16
	derivedBytes = 32
	hashSep      = ":"
)

// PasswordHasher derives and checks salted PBKDF2-HMAC-SHA256 hashes stored
// as "salt:hexdigest".
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher builds a hasher with the given iteration count.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultPBKDF2Iterations
	}
	return &PasswordHasher{iterations: iterations}
}

// Hash returns a freshly salted hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	return salt + hashSep + h.derive(password, salt), nil
}

// Verify reports whether password matches stored. Malformed input yields false.
func (h *PasswordHasher) Verify(password, stored string) bool {
	salt, digest, ok := strings.Cut(stored, hashSep)
	if !ok || salt == "" || digest == "" || strings.Contains(digest, hashSep) {
		return false
	}
	expected := h.derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}

// The salt's hex text, not its decoded bytes, is the KDF salt. Stored hashes
// depend on this.
func (h *PasswordHasher) derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, derivedBytes, sha256.New)
	return hex.EncodeToString(key)
}
