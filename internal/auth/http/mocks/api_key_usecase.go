// Package mocks contains mock implementations for auth HTTP handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

// MockAPIKeyUseCase is a mock implementation of APIKeyUseCase.
type MockAPIKeyUseCase struct {
	mock.Mock
}

func (m *MockAPIKeyUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateAPIKeyInput,
) (*authDomain.CreateAPIKeyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateAPIKeyOutput), args.Error(1)
}

func (m *MockAPIKeyUseCase) Authenticate(
	ctx context.Context,
	plainKey string,
) (*authDomain.APIKey, error) {
	args := m.Called(ctx, plainKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.APIKey), args.Error(1)
}

func (m *MockAPIKeyUseCase) Revoke(ctx context.Context, apiKeyID uuid.UUID) error {
	args := m.Called(ctx, apiKeyID)
	return args.Error(0)
}

func (m *MockAPIKeyUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.APIKey, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.APIKey), args.Error(1)
}

func (m *MockAPIKeyUseCase) TouchLastUsed(ctx context.Context, apiKeyID uuid.UUID) error {
	args := m.Called(ctx, apiKeyID)
	return args.Error(0)
}
