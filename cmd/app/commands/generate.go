package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/identity"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
)

// GenerateOptions carries the flag values of the generate command.
type GenerateOptions struct {
	// Seed pins the random seed; nil derives one from the configured lineage.
	Seed *int64
	// Gender is the requested gender (male, female, random or empty).
	Gender string
	// AgeMin and AgeMax bound the generated age; both zero selects the default.
	AgeMin int
	AgeMax int
	// Region is an explicit region code (empty selects a weighted draw).
	Region string
	// Documents lists the documents to generate; nil selects the default set.
	Documents []string
	// IncludeFinance requests a finance payload alongside the identity.
	IncludeFinance bool
	// Currency overrides the finance currency (empty selects the default).
	Currency string
}

// RunGenerate generates a single profile and prints it. The profile is
// persisted like any API-generated profile, so the printed ID can be fetched
// and exported later.
//
// Requirements: Database must be migrated and accessible.
func RunGenerate(
	ctx context.Context,
	profileUseCase profilesUseCase.ProfileUseCase,
	logger *slog.Logger,
	writer io.Writer,
	opts GenerateOptions,
	format string,
) error {
	input, err := buildGenerateInput(opts)
	if err != nil {
		return err
	}

	logger.Info("generating profile",
		slog.Bool("include_finance", opts.IncludeFinance),
		slog.Bool("seed_pinned", opts.Seed != nil),
	)

	profile, err := profileUseCase.Generate(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to generate profile: %w", err)
	}

	if format == "json" {
		outputProfileJSON(profile, writer)
	} else {
		outputProfileText(profile, writer)
	}

	logger.Info("profile generated successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.Int64("seed", profile.Seed),
	)

	return nil
}

// buildGenerateInput validates the options and maps them to a use case input.
func buildGenerateInput(opts GenerateOptions) (profilesUseCase.GenerateInput, error) {
	switch opts.Gender {
	case "", "male", "female", "random":
	default:
		return profilesUseCase.GenerateInput{}, fmt.Errorf(
			"invalid gender: %s (valid options: male, female, random)",
			opts.Gender,
		)
	}

	var ageRange *engine.Range
	if opts.AgeMin != 0 || opts.AgeMax != 0 {
		r, err := engine.NewRange(opts.AgeMin, opts.AgeMax)
		if err != nil {
			return profilesUseCase.GenerateInput{}, fmt.Errorf("invalid age range: %w", err)
		}
		ageRange = &r
	}

	return profilesUseCase.GenerateInput{
		Seed: opts.Seed,
		Identity: identity.Params{
			Gender:           identity.Gender(opts.Gender),
			AgeRange:         ageRange,
			Region:           opts.Region,
			IncludeDocuments: opts.Documents,
		},
		IncludeFinance: opts.IncludeFinance,
		Currency:       opts.Currency,
	}, nil
}

// outputProfileText outputs a short summary in human-readable text format.
func outputProfileText(profile *profilesDomain.Profile, writer io.Writer) {
	personal := profile.Identity.Personal
	_, _ = fmt.Fprintln(writer, "\nProfile generated successfully!")
	_, _ = fmt.Fprintf(writer, "Profile ID: %s\n", profile.ID.String())
	_, _ = fmt.Fprintf(writer, "Seed: %d\n", profile.Seed)
	_, _ = fmt.Fprintf(writer, "Name: %s %s %s\n", personal.LastName, personal.FirstName, personal.MiddleName)
	_, _ = fmt.Fprintf(writer, "Gender: %s\n", personal.Gender)
	_, _ = fmt.Fprintf(writer, "Birth date: %s (age %d)\n", personal.BirthDate, personal.Age)
	if profile.Finance != nil {
		_, _ = fmt.Fprintf(
			writer,
			"Finance: %d card(s), %d transaction(s)\n",
			len(profile.Finance.Cards),
			len(profile.Finance.Transactions),
		)
	}
}

// outputProfileJSON outputs the full profile in JSON format for machine consumption.
func outputProfileJSON(profile *profilesDomain.Profile, writer io.Writer) {
	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
