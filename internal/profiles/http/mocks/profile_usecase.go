// Package mocks provides mock implementations for profile use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
)

// MockProfileUseCase is a mock implementation of the ProfileUseCase interface.
type MockProfileUseCase struct {
	mock.Mock
}

// Generate mocks the Generate method.
func (m *MockProfileUseCase) Generate(
	ctx context.Context,
	input profilesUseCase.GenerateInput,
) (*profilesDomain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilesDomain.Profile), args.Error(1)
}

// Get mocks the Get method.
func (m *MockProfileUseCase) Get(
	ctx context.Context,
	profileID uuid.UUID,
) (*profilesDomain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilesDomain.Profile), args.Error(1)
}

// List mocks the List method.
func (m *MockProfileUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*profilesDomain.Profile, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profilesDomain.Profile), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockProfileUseCase) Delete(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// CleanExpired mocks the CleanExpired method.
func (m *MockProfileUseCase) CleanExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method.
func (m *MockProfileUseCase) CountExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}
