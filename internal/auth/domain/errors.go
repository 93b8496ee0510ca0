package domain

import (
	"github.com/syntorio/synthid/internal/errors"
)

// Authentication errors.
var (
	// ErrAPIKeyNotFound indicates an API key with the specified ID was not found.
	ErrAPIKeyNotFound = errors.Wrap(errors.ErrNotFound, "api key not found")

	// ErrInvalidAPIKey covers unknown, expired and revoked keys so callers
	// cannot tell them apart.
	ErrInvalidAPIKey = errors.Wrap(errors.ErrUnauthorized, "invalid api key")

	// ErrAdminRequired indicates the authenticated key lacks the admin role.
	ErrAdminRequired = errors.Wrap(errors.ErrForbidden, "admin role required")
)
