// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// ProfileSummary represents a profile in list responses. The generation
// payloads are omitted; callers fetch them through the single-profile
// endpoint.
type ProfileSummary struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListProfilesResponse represents a paginated list of profiles in API responses.
type ListProfilesResponse struct {
	Data []ProfileSummary `json:"data"`
}

// MapProfilesToListResponse converts a slice of domain profiles to a list response.
func MapProfilesToListResponse(profiles []*profilesDomain.Profile) ListProfilesResponse {
	data := make([]ProfileSummary, 0, len(profiles))
	for _, profile := range profiles {
		personal := profile.Identity.Personal
		data = append(data, ProfileSummary{
			ID:        profile.ID.String(),
			Seed:      profile.Seed,
			FullName:  personal.LastName + " " + personal.FirstName + " " + personal.MiddleName,
			CreatedAt: profile.CreatedAt,
		})
	}

	return ListProfilesResponse{
		Data: data,
	}
}
