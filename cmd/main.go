package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/irfansharif/fluid/internal/config"
)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
}

func main() {
	cliApp := &cli.App{
		Name:  "fluid",
		Usage: "an interactive gradient field of blurred, pointer-reactive discs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML preset applied over the defaults",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "share link or bare query string applied after the preset",
			},
			&cli.StringFlag{
				Name:  "base",
				Value: "http://localhost:8080/",
				Usage: "base URL share links are built on",
			},
			&cli.Int64Flag{
				Name:    "seed",
				EnvVars: []string{"FLUID_SEED"},
				Usage:   "random seed (defaults to the current time)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"FLUID_DEBUG"},
				Usage:   "log at debug level, including per-second frame statistics",
			},
		},
		Action: runCommand.Action,
		Commands: []*cli.Command{
			runCommand,
			shareCommand,
			embedCommand,
			snapshotCommand,
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fluid: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings layers the preset and then the share link over the defaults,
// whose radius is derived from the canvas width.
// Malformed values are logged and skipped; a missing preset file is fatal.
func loadSettings(c *cli.Context, logger *slog.Logger, width int) (config.Settings, error) {
	s := config.Default()
	s.Radius = config.DefaultRadius(width)
	if path := c.String("config"); path != "" {
		if err := config.LoadPreset(path, &s); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return config.Settings{}, err
			}
			logger.Warn("Preset partially applied", slog.String("path", path), slog.Any("error", err))
		}
	}
	if raw := c.String("url"); raw != "" {
		if err := config.ParseURL(raw, &s); err != nil {
			logger.Warn("Share link partially applied", slog.Any("error", err))
		}
	}
	return s, nil
}

func newRand(c *cli.Context, logger *slog.Logger) *rand.Rand {
	seed := time.Now().UnixNano()
	if c.IsSet("seed") {
		seed = c.Int64("seed")
	}
	logger.Debug("Seeded", slog.Int64("seed", seed))
	return rand.New(rand.NewSource(seed))
}
