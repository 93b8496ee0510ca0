// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// ProfileResponse represents a generated profile in API responses.
// The Identity and Finance sections are the stored generation payloads;
// Seed allows the caller to reproduce them.
type ProfileResponse struct {
	ID        string           `json:"id"`
	Seed      int64            `json:"seed"`
	Identity  identity.Payload `json:"identity"`
	Finance   *finance.Payload `json:"finance,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// MapProfileToResponse converts a domain profile to an API response.
func MapProfileToResponse(profile *profilesDomain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID.String(),
		Seed:      profile.Seed,
		Identity:  profile.Identity,
		Finance:   profile.Finance,
		CreatedAt: profile.CreatedAt,
	}
}
