// Package service provides key generation and hashing for API key
// authentication. Keys are indexed by a SHA-256 lookup hash and verified
// with Argon2id.
package service

// KeyService defines the interface for API key generation and verification.
type KeyService interface {
	// GenerateKey creates a new random API key. Returns the plain key, its
	// SHA-256 lookup hash and its Argon2id verification hash.
	GenerateKey() (plainKey string, lookupHash string, keyHash string, err error)
	// LookupHash computes the SHA-256 hex digest used to locate a key row.
	LookupHash(plainKey string) string
	// CompareKey verifies a plain key against its Argon2id hash.
	CompareKey(plainKey string, keyHash string) bool
}
