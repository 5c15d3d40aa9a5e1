package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/postloop/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
		Out:   os.Stdout,
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "postloop",
		Usage:   "Page through post query results with optional filters",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("POSTLOOP_LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Flags.LogLevel = level.String()
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a page of posts from a posts file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "path to postloop.json (default: nearest in parent directories)"},
					&cli.StringFlag{Name: "source", Usage: "path to the posts JSON file"},
					&cli.StringFlag{Name: "type", Usage: "post type to query"},
					&cli.IntFlag{Name: "per-page", Usage: "posts per page, -1 for all"},
					&cli.IntFlag{Name: "page", Usage: "1-based page number", Value: 1},
					&cli.StringSliceFlag{Name: "status", Usage: "post statuses to include"},
					&cli.StringFlag{Name: "orderby", Usage: "date, title, ID or menu_order"},
					&cli.StringFlag{Name: "order", Usage: "ASC or DESC"},
					&cli.IntSliceFlag{Name: "author", Usage: "only show posts by these author IDs"},
					&cli.StringFlag{Name: "search", Usage: "only show posts whose title contains this text"},
					&cli.BoolFlag{Name: "watch", Usage: "list again whenever the posts file changes"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.List(ctx, commands.ListOptions{
						ConfigPath: c.String("config"),
						Source:     c.String("source"),
						PostType:   c.String("type"),
						PerPage:    int(c.Int("per-page")),
						Page:       int(c.Int("page")),
						Status:     c.StringSlice("status"),
						OrderBy:    c.String("orderby"),
						Order:      c.String("order"),
						Authors:    c.IntSlice("author"),
						Search:     c.String("search"),
						Watch:      c.Bool("watch"),
					})
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run postloop")
	}
}
