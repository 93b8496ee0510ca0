// Package mocks provides mock implementations for testing profile use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// MockProfileRepository is a mock implementation of ProfileRepository for testing.
type MockProfileRepository struct {
	mock.Mock
}

// Create mocks the Create method of ProfileRepository.
func (m *MockProfileRepository) Create(ctx context.Context, profile *profilesDomain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// Get mocks the Get method of ProfileRepository.
func (m *MockProfileRepository) Get(
	ctx context.Context,
	profileID uuid.UUID,
) (*profilesDomain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilesDomain.Profile), args.Error(1)
}

// List mocks the List method of ProfileRepository.
func (m *MockProfileRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*profilesDomain.Profile, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profilesDomain.Profile), args.Error(1)
}

// Delete mocks the Delete method of ProfileRepository.
func (m *MockProfileRepository) Delete(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// DeleteOlderThan mocks the DeleteOlderThan method of ProfileRepository.
func (m *MockProfileRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// CountOlderThan mocks the CountOlderThan method of ProfileRepository.
func (m *MockProfileRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
