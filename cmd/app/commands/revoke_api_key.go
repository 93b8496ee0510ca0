package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/syntorio/synthid/internal/auth/usecase"
)

// RunRevokeAPIKey revokes an API key by ID. Revocation is permanent: the key
// stops authenticating immediately and cannot be reactivated.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeAPIKey(
	ctx context.Context,
	apiKeyUseCase authUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id string,
) error {
	apiKeyID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid API key ID: %w", err)
	}

	logger.Info("revoking API key", slog.String("api_key_id", apiKeyID.String()))

	if err := apiKeyUseCase.Revoke(ctx, apiKeyID); err != nil {
		return fmt.Errorf("failed to revoke API key: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "API key %s revoked\n", apiKeyID.String())

	logger.Info("API key revoked successfully", slog.String("api_key_id", apiKeyID.String()))
	return nil
}
