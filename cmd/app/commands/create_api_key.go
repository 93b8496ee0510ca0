package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	authUseCase "github.com/syntorio/synthid/internal/auth/usecase"
)

// RunCreateAPIKey creates a new API key and prints the plain key. The plain
// key is shown exactly once and cannot be recovered afterwards.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAPIKey(
	ctx context.Context,
	apiKeyUseCase authUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	role string,
	expiresDays int,
	format string,
) error {
	parsedRole, err := parseRole(role)
	if err != nil {
		return err
	}

	if expiresDays < 0 {
		return fmt.Errorf("expires-days must be a positive number, got: %d", expiresDays)
	}

	var expiresAt *time.Time
	if expiresDays > 0 {
		expiry := time.Now().UTC().Add(time.Duration(expiresDays) * 24 * time.Hour)
		expiresAt = &expiry
	}

	logger.Info("creating new API key",
		slog.String("name", name),
		slog.String("role", role),
	)

	input := &authDomain.CreateAPIKeyInput{
		Name:      name,
		Role:      parsedRole,
		ExpiresAt: expiresAt,
	}

	output, err := apiKeyUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputAPIKeyJSON(output, writer)
	} else {
		outputAPIKeyText(output, writer)
	}

	logger.Info("API key created successfully",
		slog.String("api_key_id", output.APIKey.ID.String()),
		slog.String("name", name),
	)

	return nil
}

// outputAPIKeyText outputs the result in human-readable text format.
func outputAPIKeyText(output *authDomain.CreateAPIKeyOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nAPI key created successfully!")
	_, _ = fmt.Fprintf(writer, "ID: %s\n", output.APIKey.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", output.APIKey.Name)
	_, _ = fmt.Fprintf(writer, "Role: %s\n", output.APIKey.Role)
	if output.APIKey.ExpiresAt != nil {
		_, _ = fmt.Fprintf(writer, "Expires at: %s\n", output.APIKey.ExpiresAt.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(writer, "Key: %s\n", output.PlainKey)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The key is shown only once. Store it securely.")
}

// outputAPIKeyJSON outputs the result in JSON format for machine consumption.
func outputAPIKeyJSON(output *authDomain.CreateAPIKeyOutput, writer io.Writer) {
	result := map[string]interface{}{
		"id":   output.APIKey.ID.String(),
		"name": output.APIKey.Name,
		"role": string(output.APIKey.Role),
		"key":  output.PlainKey,
	}
	if output.APIKey.ExpiresAt != nil {
		result["expires_at"] = output.APIKey.ExpiresAt.Format(time.RFC3339)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
