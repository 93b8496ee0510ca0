// Package domain defines the core domain models for API key authentication.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what an API key is allowed to do.
type Role string

// Supported roles.
const (
	// RoleUser may generate and read profiles.
	RoleUser Role = "user"
	// RoleAdmin may additionally manage API keys.
	RoleAdmin Role = "admin"
)

// Status is the lifecycle state of an API key.
type Status string

// Supported statuses.
const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// APIKey represents a stored API key. The plain key is never stored: the
// row is indexed by a SHA-256 lookup hash and verified against an Argon2id
// hash.
type APIKey struct {
	ID   uuid.UUID
	Name string
	// LookupHash is the SHA-256 hex digest of the plain key, used to locate
	// the row on authentication.
	LookupHash string
	// KeyHash is the Argon2id hash verified after lookup.
	KeyHash    string
	Role       Role
	Status     Status
	ExpiresAt  *time.Time
	LastUsedAt *time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

// IsActive reports whether the key may authenticate at the given time.
func (k *APIKey) IsActive(now time.Time) bool {
	if k.Status != StatusActive || k.RevokedAt != nil {
		return false
	}
	if k.ExpiresAt != nil && k.ExpiresAt.Before(now) {
		return false
	}
	return true
}

// IsAdmin reports whether the key may access admin endpoints.
func (k *APIKey) IsAdmin() bool {
	return k.Role == RoleAdmin
}

// CreateAPIKeyInput carries the parameters for creating an API key.
type CreateAPIKeyInput struct {
	Name string
	Role Role
	// ExpiresAt is an optional expiry; nil keys never expire.
	ExpiresAt *time.Time
}

// CreateAPIKeyOutput is returned on key creation. PlainKey is shown exactly
// once and cannot be recovered afterwards.
type CreateAPIKeyOutput struct {
	APIKey   *APIKey
	PlainKey string
}
