package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/eihwaz/internal"
	pkgconfig "github.com/starford/eihwaz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadIfExists(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !found && cmd.IsSet("config") {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
		if err := cfg.Output.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func action(mode string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithMode(mode),
		}
		if mode == internal.ModeTree {
			opts = append(opts, internal.WithTreeRoot(cmd.String("root")))
		}

		if err := internal.Run(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "eihwaz",
		Usage:  "Resolve sidebar configuration over hierarchical note vaults into navigation trees",
		Action: action(internal.ModeMenu),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Sources: cli.EnvVars("APP_OUTPUT_FORMAT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "resolve",
				Usage:  "Validate and resolve the sidebar configuration",
				Action: action(internal.ModeResolve),
			},
			{
				Name:   "menu",
				Usage:  "Build the navigation menu for the resolved sidebar",
				Action: action(internal.ModeMenu),
			},
			{
				Name:  "tree",
				Usage: "Print the note hierarchy under one note",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "root",
						Usage: "Note id or fname to expand from",
					},
				},
				Action: action(internal.ModeTree),
			},
			{
				Name:   "verify",
				Usage:  "Check that child pointers and fnames describe the same hierarchy",
				Action: action(internal.ModeVerify),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
