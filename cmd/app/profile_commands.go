package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/syntorio/synthid/cmd/app/commands"
	"github.com/syntorio/synthid/internal/app"
	"github.com/syntorio/synthid/internal/config"
)

func getProfileCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate",
			Usage: "Generate a single profile and print it",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:    "seed",
					Aliases: []string{"s"},
					Usage:   "Random seed (omit for a derived seed)",
				},
				&cli.StringFlag{
					Name:    "gender",
					Aliases: []string{"g"},
					Usage:   "Gender: 'male', 'female' or 'random'",
				},
				&cli.IntFlag{
					Name:  "age-min",
					Usage: "Minimum age (requires --age-max)",
				},
				&cli.IntFlag{
					Name:  "age-max",
					Usage: "Maximum age (requires --age-min)",
				},
				&cli.StringFlag{
					Name:    "region",
					Aliases: []string{"r"},
					Usage:   "Region code (omit for a weighted draw)",
				},
				&cli.StringSliceFlag{
					Name:    "documents",
					Aliases: []string{"doc"},
					Usage:   "Documents to generate (omit for the default set)",
				},
				&cli.BoolFlag{
					Name:  "finance",
					Usage: "Include a finance payload",
				},
				&cli.StringFlag{
					Name:    "currency",
					Aliases: []string{"c"},
					Usage:   "Finance currency code (omit for the default)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				profileUseCase, err := container.ProfileUseCase()
				if err != nil {
					return err
				}

				opts := commands.GenerateOptions{
					Gender:         cmd.String("gender"),
					AgeMin:         int(cmd.Int("age-min")),
					AgeMax:         int(cmd.Int("age-max")),
					Region:         cmd.String("region"),
					IncludeFinance: cmd.Bool("finance"),
					Currency:       cmd.String("currency"),
				}
				if cmd.IsSet("seed") {
					seed := cmd.Int64("seed")
					opts.Seed = &seed
				}
				if cmd.IsSet("documents") {
					opts.Documents = cmd.StringSlice("documents")
				}

				return commands.RunGenerate(
					ctx,
					profileUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					opts,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-profiles",
			Usage: "Delete profiles older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete profiles older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many profiles would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				profileUseCase, err := container.ProfileUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanProfiles(
					ctx,
					profileUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
