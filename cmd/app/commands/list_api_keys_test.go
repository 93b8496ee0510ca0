package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	authMocks "github.com/syntorio/synthid/internal/auth/http/mocks"
)

func TestRunListAPIKeys(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	apiKeys := []*authDomain.APIKey{
		{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "ci-pipeline",
			Role:      authDomain.RoleUser,
			Status:    authDomain.StatusActive,
			CreatedAt: time.Now().UTC(),
		},
		{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "ops-admin",
			Role:      authDomain.RoleAdmin,
			Status:    authDomain.StatusRevoked,
			CreatedAt: time.Now().UTC(),
		},
	}

	t.Run("text", func(t *testing.T) {
		mockUseCase := &authMocks.MockAPIKeyUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return(apiKeys, nil)

		var out bytes.Buffer
		err := RunListAPIKeys(ctx, mockUseCase, logger, &out, 0, 50, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), apiKeys[0].ID.String())
		require.Contains(t, out.String(), "ci-pipeline")
		require.Contains(t, out.String(), "revoked")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &authMocks.MockAPIKeyUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return(apiKeys, nil)

		var out bytes.Buffer
		err := RunListAPIKeys(ctx, mockUseCase, logger, &out, 0, 50, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), apiKeys[1].ID.String())
		require.Contains(t, out.String(), `"status": "revoked"`)
		// Key material is never stored, so it can never be listed.
		require.NotContains(t, out.String(), `"key"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		mockUseCase := &authMocks.MockAPIKeyUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return([]*authDomain.APIKey{}, nil)

		var out bytes.Buffer
		err := RunListAPIKeys(ctx, mockUseCase, logger, &out, 0, 50, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No API keys found")
		mockUseCase.AssertExpectations(t)
	})
}
