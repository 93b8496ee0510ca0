// Package usecase implements business logic orchestration for API key
// authentication operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

// APIKeyRepository defines the interface for API key persistence operations.
type APIKeyRepository interface {
	Create(ctx context.Context, apiKey *authDomain.APIKey) error
	GetByID(ctx context.Context, apiKeyID uuid.UUID) (*authDomain.APIKey, error)
	GetByLookupHash(ctx context.Context, lookupHash string) (*authDomain.APIKey, error)
	List(ctx context.Context, offset, limit int) ([]*authDomain.APIKey, error)
	Revoke(ctx context.Context, apiKeyID uuid.UUID, revokedAt time.Time) error
	UpdateLastUsed(ctx context.Context, apiKeyID uuid.UUID, lastUsedAt time.Time) error
}

// APIKeyUseCase defines the interface for API key management business logic.
type APIKeyUseCase interface {
	// Create generates a new API key and persists it. The plain key is
	// returned exactly once.
	Create(ctx context.Context, input *authDomain.CreateAPIKeyInput) (*authDomain.CreateAPIKeyOutput, error)
	// Authenticate validates a plain API key and returns the stored key row.
	Authenticate(ctx context.Context, plainKey string) (*authDomain.APIKey, error)
	// Revoke permanently deactivates an API key.
	Revoke(ctx context.Context, apiKeyID uuid.UUID) error
	// List retrieves stored API keys with pagination.
	List(ctx context.Context, offset, limit int) ([]*authDomain.APIKey, error)
	// TouchLastUsed records that a key just authenticated a request.
	TouchLastUsed(ctx context.Context, apiKeyID uuid.UUID) error
}
