package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	authService "github.com/syntorio/synthid/internal/auth/service"
	"github.com/syntorio/synthid/internal/database"
	apperrors "github.com/syntorio/synthid/internal/errors"
)

// apiKeyUseCase implements APIKeyUseCase for managing API keys.
type apiKeyUseCase struct {
	txManager  database.TxManager
	apiKeyRepo APIKeyRepository
	keyService authService.KeyService
	now        func() time.Time
}

// NewAPIKeyUseCase creates a new APIKeyUseCase with the provided dependencies.
func NewAPIKeyUseCase(
	txManager database.TxManager,
	apiKeyRepo APIKeyRepository,
	keyService authService.KeyService,
) APIKeyUseCase {
	return &apiKeyUseCase{
		txManager:  txManager,
		apiKeyRepo: apiKeyRepo,
		keyService: keyService,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create generates a new API key, persists its hashes and returns the plain
// key. The plain key cannot be recovered afterwards.
func (a *apiKeyUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateAPIKeyInput,
) (*authDomain.CreateAPIKeyOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "api key name must not be empty")
	}

	role := input.Role
	if role == "" {
		role = authDomain.RoleUser
	}
	if role != authDomain.RoleUser && role != authDomain.RoleAdmin {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown api key role")
	}

	plainKey, lookupHash, keyHash, err := a.keyService.GenerateKey()
	if err != nil {
		return nil, err
	}

	apiKey := &authDomain.APIKey{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       strings.TrimSpace(input.Name),
		LookupHash: lookupHash,
		KeyHash:    keyHash,
		Role:       role,
		Status:     authDomain.StatusActive,
		ExpiresAt:  input.ExpiresAt,
		CreatedAt:  a.now(),
	}

	if err := a.apiKeyRepo.Create(ctx, apiKey); err != nil {
		return nil, err
	}

	return &authDomain.CreateAPIKeyOutput{
		APIKey:   apiKey,
		PlainKey: plainKey,
	}, nil
}

// Authenticate validates a plain API key against its stored hashes.
//
// Unknown, expired and revoked keys all return ErrInvalidAPIKey so callers
// cannot probe which keys exist.
func (a *apiKeyUseCase) Authenticate(
	ctx context.Context,
	plainKey string,
) (*authDomain.APIKey, error) {
	if !strings.HasPrefix(plainKey, authService.KeyPrefix) {
		return nil, authDomain.ErrInvalidAPIKey
	}

	apiKey, err := a.apiKeyRepo.GetByLookupHash(ctx, a.keyService.LookupHash(plainKey))
	if err != nil {
		if errors.Is(err, authDomain.ErrAPIKeyNotFound) {
			return nil, authDomain.ErrInvalidAPIKey
		}
		return nil, err
	}

	if !a.keyService.CompareKey(plainKey, apiKey.KeyHash) {
		return nil, authDomain.ErrInvalidAPIKey
	}

	if !apiKey.IsActive(a.now()) {
		return nil, authDomain.ErrInvalidAPIKey
	}

	return apiKey, nil
}

// Revoke permanently deactivates an API key. The existence check and the
// status update run in one transaction.
func (a *apiKeyUseCase) Revoke(ctx context.Context, apiKeyID uuid.UUID) error {
	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := a.apiKeyRepo.GetByID(ctx, apiKeyID); err != nil {
			return err
		}
		return a.apiKeyRepo.Revoke(ctx, apiKeyID, a.now())
	})
}

// List retrieves stored API keys with pagination.
func (a *apiKeyUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.APIKey, error) {
	return a.apiKeyRepo.List(ctx, offset, limit)
}

// TouchLastUsed records the authentication timestamp of a key.
func (a *apiKeyUseCase) TouchLastUsed(ctx context.Context, apiKeyID uuid.UUID) error {
	return a.apiKeyRepo.UpdateLastUsed(ctx, apiKeyID, a.now())
}
