// Package usecase defines the interfaces and implementations for profile
// management use cases. Use cases drive the generation engine and persist
// the resulting payloads through repositories.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/identity"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// GenerateInput carries the parameters of a profile generation request.
type GenerateInput struct {
	// Seed pins the random seed; nil derives one from the configured seed
	// lineage or the wall clock.
	Seed *int64
	// Identity holds the identity module parameters.
	Identity identity.Params
	// IncludeFinance requests a finance payload alongside the identity.
	IncludeFinance bool
	// Currency overrides the finance currency (empty selects the default).
	Currency string
	// CardsRange overrides the finance card count interval.
	CardsRange *engine.Range
	// TransactionsRange overrides the finance transaction count interval.
	TransactionsRange *engine.Range
	// APIKeyID attributes the generation to an API key (nil for CLI runs).
	APIKeyID *uuid.UUID
}

// ProfileRepository defines the interface for Profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *profilesDomain.Profile) error
	Get(ctx context.Context, profileID uuid.UUID) (*profilesDomain.Profile, error)
	List(ctx context.Context, offset, limit int) ([]*profilesDomain.Profile, error)
	Delete(ctx context.Context, profileID uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ProfileUseCase defines the interface for profile management business logic.
type ProfileUseCase interface {
	// Generate produces a new profile and persists it.
	Generate(ctx context.Context, input GenerateInput) (*profilesDomain.Profile, error)
	// Get retrieves a stored profile by its identifier.
	Get(ctx context.Context, profileID uuid.UUID) (*profilesDomain.Profile, error)
	// List retrieves stored profiles, newest first, with pagination.
	List(ctx context.Context, offset, limit int) ([]*profilesDomain.Profile, error)
	// Delete performs a soft delete on a stored profile.
	Delete(ctx context.Context, profileID uuid.UUID) error
	// CleanExpired soft-deletes profiles older than the retention period and
	// returns the number of affected rows.
	CleanExpired(ctx context.Context, retention time.Duration) (int64, error)
	// CountExpired reports how many profiles CleanExpired would remove,
	// without removing anything.
	CountExpired(ctx context.Context, retention time.Duration) (int64, error)
}
