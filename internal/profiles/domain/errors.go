// Package domain defines core domain models and errors for profiles.
package domain

import (
	"github.com/syntorio/synthid/internal/errors"
)

// Profile-specific error definitions.
var (
	// ErrProfileNotFound indicates the profile does not exist or was deleted.
	ErrProfileNotFound = errors.Wrap(errors.ErrNotFound, "profile not found")
)
