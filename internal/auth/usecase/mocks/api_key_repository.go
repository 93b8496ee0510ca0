// Package mocks provides mock implementations for auth persistence interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

// MockAPIKeyRepository is a mock implementation of the APIKeyRepository interface.
type MockAPIKeyRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockAPIKeyRepository) Create(ctx context.Context, apiKey *authDomain.APIKey) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockAPIKeyRepository) GetByID(
	ctx context.Context,
	apiKeyID uuid.UUID,
) (*authDomain.APIKey, error) {
	args := m.Called(ctx, apiKeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.APIKey), args.Error(1)
}

// GetByLookupHash mocks the GetByLookupHash method.
func (m *MockAPIKeyRepository) GetByLookupHash(
	ctx context.Context,
	lookupHash string,
) (*authDomain.APIKey, error) {
	args := m.Called(ctx, lookupHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.APIKey), args.Error(1)
}

// List mocks the List method.
func (m *MockAPIKeyRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.APIKey, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.APIKey), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockAPIKeyRepository) Revoke(
	ctx context.Context,
	apiKeyID uuid.UUID,
	revokedAt time.Time,
) error {
	args := m.Called(ctx, apiKeyID, revokedAt)
	return args.Error(0)
}

// UpdateLastUsed mocks the UpdateLastUsed method.
func (m *MockAPIKeyRepository) UpdateLastUsed(
	ctx context.Context,
	apiKeyID uuid.UUID,
	lastUsedAt time.Time,
) error {
	args := m.Called(ctx, apiKeyID, lastUsedAt)
	return args.Error(0)
}
