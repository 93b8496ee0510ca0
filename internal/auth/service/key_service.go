package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/syntorio/synthid/internal/errors"
)

// KeyPrefix marks generated API keys so they are recognizable in logs and
// secret scanners.
const KeyPrefix = "sk_"

// keyService implements KeyService using Argon2id for key hashing.
type keyService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateKey creates a new cryptographically secure 32-byte random key.
// The key is base64 URL-encoded and carries the "sk_" prefix.
func (s *keyService) GenerateKey() (plainKey string, lookupHash string, keyHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to generate random key")
	}

	plainKey = KeyPrefix + base64.RawURLEncoding.EncodeToString(randomBytes)
	lookupHash = s.LookupHash(plainKey)

	keyHash, err = s.hasher.Hash([]byte(plainKey))
	if err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to hash key")
	}

	return plainKey, lookupHash, keyHash, nil
}

// LookupHash hashes a plain key using SHA-256.
// Returns the hash as a hexadecimal string.
func (s *keyService) LookupHash(plainKey string) string {
	hash := sha256.Sum256([]byte(plainKey))
	return hex.EncodeToString(hash[:])
}

// CompareKey performs a constant-time comparison between a plain key and its hash.
func (s *keyService) CompareKey(plainKey string, keyHash string) bool {
	ok, err := s.hasher.Verify([]byte(plainKey), keyHash)
	if err != nil {
		return false
	}
	return ok
}

// NewKeyService creates a new KeyService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewKeyService() KeyService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &keyService{
		hasher: hasher,
	}
}
