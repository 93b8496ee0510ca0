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

// RunListAPIKeys lists stored API keys, newest first. Key material is never
// stored, so the listing only shows metadata.
//
// Requirements: Database must be migrated and accessible.
func RunListAPIKeys(
	ctx context.Context,
	apiKeyUseCase authUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	offset, limit int,
	format string,
) error {
	logger.Info("listing API keys",
		slog.Int("offset", offset),
		slog.Int("limit", limit),
	)

	apiKeys, err := apiKeyUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list API keys: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputAPIKeyListJSON(apiKeys, writer)
	} else {
		outputAPIKeyListText(apiKeys, writer)
	}

	return nil
}

// outputAPIKeyListText outputs one line per key in human-readable text format.
func outputAPIKeyListText(apiKeys []*authDomain.APIKey, writer io.Writer) {
	if len(apiKeys) == 0 {
		_, _ = fmt.Fprintln(writer, "No API keys found")
		return
	}

	for _, apiKey := range apiKeys {
		expires := "never"
		if apiKey.ExpiresAt != nil {
			expires = apiKey.ExpiresAt.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(
			writer,
			"%s  %-20s  %-5s  %-7s  expires=%s  created=%s\n",
			apiKey.ID.String(),
			apiKey.Name,
			apiKey.Role,
			apiKey.Status,
			expires,
			apiKey.CreatedAt.Format(time.RFC3339),
		)
	}
}

// outputAPIKeyListJSON outputs the listing in JSON format for machine consumption.
func outputAPIKeyListJSON(apiKeys []*authDomain.APIKey, writer io.Writer) {
	result := make([]map[string]interface{}, 0, len(apiKeys))
	for _, apiKey := range apiKeys {
		entry := map[string]interface{}{
			"id":         apiKey.ID.String(),
			"name":       apiKey.Name,
			"role":       string(apiKey.Role),
			"status":     string(apiKey.Status),
			"created_at": apiKey.CreatedAt.Format(time.RFC3339),
		}
		if apiKey.ExpiresAt != nil {
			entry["expires_at"] = apiKey.ExpiresAt.Format(time.RFC3339)
		}
		if apiKey.LastUsedAt != nil {
			entry["last_used_at"] = apiKey.LastUsedAt.Format(time.RFC3339)
		}
		result = append(result, entry)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
