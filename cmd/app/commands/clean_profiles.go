package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
)

// RunCleanProfiles soft-deletes profiles older than the specified number of days.
// Supports dry-run mode to preview the deletion count and both text/JSON output
// formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanProfiles(
	ctx context.Context,
	profileUseCase profilesUseCase.ProfileUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning profiles",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	retention := time.Duration(days) * 24 * time.Hour

	var count int64
	var err error
	if dryRun {
		count, err = profileUseCase.CountExpired(ctx, retention)
	} else {
		count, err = profileUseCase.CleanExpired(ctx, retention)
	}
	if err != nil {
		return fmt.Errorf("failed to clean profiles: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanJSON(count, days, dryRun, writer)
	} else {
		outputCleanText(count, days, dryRun, writer)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(count int64, days int, dryRun bool, writer io.Writer) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d profile(s) older than %d day(s)\n", count, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d profile(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(count int64, days int, dryRun bool, writer io.Writer) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
