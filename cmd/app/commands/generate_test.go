package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
	profilesMocks "github.com/syntorio/synthid/internal/profiles/http/mocks"
	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
)

func testProfile() *profilesDomain.Profile {
	return &profilesDomain.Profile{
		ID:   uuid.Must(uuid.NewV7()),
		Seed: 424242,
		Identity: identity.Payload{
			Personal: identity.PersonalInfo{
				FirstName: "Ivan",
				LastName:  "Petrov",
				Gender:    identity.GenderMale,
				BirthDate: "1990-04-15",
				Age:       36,
			},
		},
	}
}

func TestRunGenerate(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text", func(t *testing.T) {
		mockUseCase := &profilesMocks.MockProfileUseCase{}
		profile := testProfile()

		mockUseCase.On("Generate", ctx, mock.MatchedBy(func(input profilesUseCase.GenerateInput) bool {
			return input.Seed != nil && *input.Seed == 424242 &&
				input.Identity.Gender == identity.GenderMale &&
				!input.IncludeFinance
		})).Return(profile, nil)

		seed := int64(424242)
		var out bytes.Buffer
		err := RunGenerate(ctx, mockUseCase, logger, &out, GenerateOptions{
			Seed:   &seed,
			Gender: "male",
		}, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), profile.ID.String())
		require.Contains(t, out.String(), "Petrov")
		require.Contains(t, out.String(), "424242")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-with-finance", func(t *testing.T) {
		mockUseCase := &profilesMocks.MockProfileUseCase{}
		profile := testProfile()
		profile.Finance = &finance.Payload{Cards: []finance.Card{{}}}

		mockUseCase.On("Generate", ctx, mock.MatchedBy(func(input profilesUseCase.GenerateInput) bool {
			return input.IncludeFinance && input.Currency == "EUR"
		})).Return(profile, nil)

		var out bytes.Buffer
		err := RunGenerate(ctx, mockUseCase, logger, &out, GenerateOptions{
			IncludeFinance: true,
			Currency:       "EUR",
		}, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), profile.ID.String())
		require.Contains(t, out.String(), "{") // Should be JSON
		mockUseCase.AssertExpectations(t)
	})

	t.Run("age-range", func(t *testing.T) {
		mockUseCase := &profilesMocks.MockProfileUseCase{}
		profile := testProfile()

		mockUseCase.On("Generate", ctx, mock.MatchedBy(func(input profilesUseCase.GenerateInput) bool {
			return input.Identity.AgeRange != nil &&
				input.Identity.AgeRange.Min == 30 &&
				input.Identity.AgeRange.Max == 40
		})).Return(profile, nil)

		var out bytes.Buffer
		err := RunGenerate(ctx, mockUseCase, logger, &out, GenerateOptions{
			AgeMin: 30,
			AgeMax: 40,
		}, "text")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-gender", func(t *testing.T) {
		mockUseCase := &profilesMocks.MockProfileUseCase{}

		var out bytes.Buffer
		err := RunGenerate(ctx, mockUseCase, logger, &out, GenerateOptions{Gender: "other"}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid gender")
		mockUseCase.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("invalid-age-range", func(t *testing.T) {
		mockUseCase := &profilesMocks.MockProfileUseCase{}

		var out bytes.Buffer
		err := RunGenerate(ctx, mockUseCase, logger, &out, GenerateOptions{
			AgeMin: 40,
			AgeMax: 30,
		}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid age range")
		mockUseCase.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}
