package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashSecret returns the hex-encoded SHA-256 digest of a shared secret.
// Private postings store only this digest; the plaintext key never touches
// the database or the logs.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// SecretMatches hashes the provided key and compares it against the stored
// digest in constant time. An empty stored digest never matches.
func SecretMatches(providedKey, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	digest := HashSecret(providedKey)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
}
