// Package domain defines the core domain models for generated profiles.
// A profile bundles one identity payload with an optional finance payload
// and remembers the seed that produced it, so any stored profile can be
// regenerated bit-identically.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
)

// Profile represents a stored synthetic profile.
type Profile struct {
	// ID is the unique identifier of the profile.
	ID uuid.UUID `json:"id"`
	// Seed is the random seed the payloads were generated from.
	Seed int64 `json:"seed"`
	// Identity is the generated identity payload.
	Identity identity.Payload `json:"identity"`
	// Finance is the generated finance payload (nil if not requested).
	Finance *finance.Payload `json:"finance,omitempty"`
	// APIKeyID references the API key that requested the generation
	// (nil for profiles generated through the CLI).
	APIKeyID *uuid.UUID `json:"api_key_id,omitempty"`
	// CreatedAt is the UTC timestamp when the profile was generated.
	CreatedAt time.Time `json:"created_at"`
	// DeletedAt marks when this profile was soft-deleted (nil if active).
	DeletedAt *time.Time `json:"-"`
}
