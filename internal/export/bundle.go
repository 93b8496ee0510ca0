// Package export renders stored profiles into portable JSON bundles.
package export

import (
	"time"

	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// FormatVersion tags the bundle layout so consumers can detect changes.
const FormatVersion = "1"

// Bundle is a self-contained export of one profile. The layout is stable:
// fields are only ever added, and FormatVersion is bumped on breaking
// changes.
type Bundle struct {
	FormatVersion string           `json:"format_version"`
	ProfileID     string           `json:"profile_id"`
	Seed          int64            `json:"seed"`
	GeneratedAt   time.Time        `json:"generated_at"`
	ExportedAt    time.Time        `json:"exported_at"`
	Identity      identity.Payload `json:"identity"`
	Finance       *finance.Payload `json:"finance,omitempty"`
}

// NewBundle assembles an export bundle from a stored profile.
func NewBundle(profile *profilesDomain.Profile, exportedAt time.Time) Bundle {
	return Bundle{
		FormatVersion: FormatVersion,
		ProfileID:     profile.ID.String(),
		Seed:          profile.Seed,
		GeneratedAt:   profile.CreatedAt,
		ExportedAt:    exportedAt.UTC(),
		Identity:      profile.Identity,
		Finance:       profile.Finance,
	}
}

// Filename returns the attachment name for a bundle download.
func (b Bundle) Filename() string {
	return "profile-" + b.ProfileID + ".json"
}
