package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	apperrors "github.com/syntorio/synthid/internal/errors"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
	"github.com/syntorio/synthid/internal/profiles/usecase/mocks"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

func newUseCase(t *testing.T, repo ProfileRepository, baseSeed int64) ProfileUseCase {
	t.Helper()

	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Maybe()

	return NewProfileUseCase(
		txManager,
		dictionary.NewEmbeddedRegistry(),
		identity.New(),
		finance.New(),
		repo,
		slog.New(slog.DiscardHandler),
		baseSeed,
		func() time.Time { return testNow },
	)
}

func TestNewProfileUseCase_NilLoggerDefaults(t *testing.T) {
	mockRepo := &mocks.MockProfileRepository{}
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil).Once()

	uc := NewProfileUseCase(
		&MockTxManager{},
		dictionary.NewEmbeddedRegistry(),
		identity.New(),
		finance.New(),
		mockRepo,
		nil,
		0,
		func() time.Time { return testNow },
	)

	_, err := uc.Generate(context.Background(), GenerateInput{})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProfileUseCase_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_IdentityOnly", func(t *testing.T) {
		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil).Once()

		uc := newUseCase(t, mockRepo, 0)
		seed := int64(42)
		profile, err := uc.Generate(ctx, GenerateInput{Seed: &seed})
		require.NoError(t, err)

		assert.Equal(t, seed, profile.Seed)
		assert.NotEmpty(t, profile.Identity.Personal.FirstName)
		assert.Nil(t, profile.Finance)
		assert.Equal(t, testNow, profile.CreatedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_WithFinance", func(t *testing.T) {
		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil).Once()

		uc := newUseCase(t, mockRepo, 0)
		seed := int64(42)
		profile, err := uc.Generate(ctx, GenerateInput{Seed: &seed, IncludeFinance: true})
		require.NoError(t, err)

		require.NotNil(t, profile.Finance)
		assert.NotEmpty(t, profile.Finance.Cards)
		for _, card := range profile.Finance.Cards {
			assert.Equal(t, profile.ID.String(), card.PersonID)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_PinnedSeedReproducesPayload", func(t *testing.T) {
		seed := int64(1234)

		generate := func() *profilesDomain.Profile {
			mockRepo := &mocks.MockProfileRepository{}
			mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil).Once()
			uc := newUseCase(t, mockRepo, 0)
			profile, err := uc.Generate(ctx, GenerateInput{Seed: &seed})
			require.NoError(t, err)
			return profile
		}

		first := generate()
		second := generate()
		assert.Equal(t, first.Identity, second.Identity)
		assert.Equal(t, first.Seed, second.Seed)
	})

	t.Run("Success_SeedLineageIsDeterministic", func(t *testing.T) {
		seeds := func() []int64 {
			mockRepo := &mocks.MockProfileRepository{}
			mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil).Times(3)
			uc := newUseCase(t, mockRepo, 99)
			var out []int64
			for i := 0; i < 3; i++ {
				profile, err := uc.Generate(ctx, GenerateInput{})
				require.NoError(t, err)
				out = append(out, profile.Seed)
			}
			return out
		}

		first := seeds()
		second := seeds()
		assert.Equal(t, first, second)
		assert.NotEqual(t, first[0], first[1])
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).
			Return(apperrors.ErrConflict).Once()

		uc := newUseCase(t, mockRepo, 0)
		seed := int64(42)
		_, err := uc.Generate(ctx, GenerateInput{Seed: &seed})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_InvalidGenerationParams", func(t *testing.T) {
		mockRepo := &mocks.MockProfileRepository{}

		uc := newUseCase(t, mockRepo, 0)
		seed := int64(42)
		ageRange := engine.Range{Min: 50, Max: 20}
		_, err := uc.Generate(ctx, GenerateInput{
			Seed:     &seed,
			Identity: identity.Params{AgeRange: &ageRange},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestProfileUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		profileID := uuid.Must(uuid.NewV7())
		stored := &profilesDomain.Profile{ID: profileID, Seed: 7}

		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Get", ctx, profileID).Return(stored, nil).Once()

		uc := newUseCase(t, mockRepo, 0)
		profile, err := uc.Get(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, stored, profile)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		profileID := uuid.Must(uuid.NewV7())

		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Get", ctx, profileID).Return(nil, profilesDomain.ErrProfileNotFound).Once()

		uc := newUseCase(t, mockRepo, 0)
		_, err := uc.Get(ctx, profileID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestProfileUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		profileID := uuid.Must(uuid.NewV7())
		stored := &profilesDomain.Profile{ID: profileID}

		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Get", ctx, profileID).Return(stored, nil).Once()
		mockRepo.On("Delete", ctx, profileID).Return(nil).Once()

		uc := newUseCase(t, mockRepo, 0)
		err := uc.Delete(ctx, profileID)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		profileID := uuid.Must(uuid.NewV7())

		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("Get", ctx, profileID).Return(nil, profilesDomain.ErrProfileNotFound).Once()

		uc := newUseCase(t, mockRepo, 0)
		err := uc.Delete(ctx, profileID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}

func TestProfileUseCase_CleanExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		retention := 30 * 24 * time.Hour
		cutoff := testNow.Add(-retention)

		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("DeleteOlderThan", ctx, cutoff).Return(int64(5), nil).Once()

		uc := newUseCase(t, mockRepo, 0)
		affected, err := uc.CleanExpired(ctx, retention)
		require.NoError(t, err)
		assert.Equal(t, int64(5), affected)
	})
}

func TestProfileUseCase_CountExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		retention := 30 * 24 * time.Hour
		cutoff := testNow.Add(-retention)

		mockRepo := &mocks.MockProfileRepository{}
		mockRepo.On("CountOlderThan", ctx, cutoff).Return(int64(3), nil).Once()

		uc := newUseCase(t, mockRepo, 0)
		count, err := uc.CountExpired(ctx, retention)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		mockRepo.AssertNotCalled(t, "DeleteOlderThan")
	})
}
