package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/irfansharif/fluid/internal/app"
	"github.com/irfansharif/fluid/internal/render"
)

// frameInterval is the simulated time step of headless rendering.
const frameInterval = time.Second / 60

var shareCommand = &cli.Command{
	Name:  "share",
	Usage: "print the share link for the loaded configuration",
	Action: func(c *cli.Context) error {
		logger := newLogger(c)
		application, err := newHeadlessApp(c, logger, 1280, 960)
		if err != nil {
			return err
		}
		link, err := application.ShareURL(c.String("base"))
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, link)
		return nil
	},
}

var embedCommand = &cli.Command{
	Name:  "embed",
	Usage: "write a standalone HTML document reproducing the loaded configuration",
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "output file (default: stdout)",
		},
	},
	Action: func(c *cli.Context) error {
		logger := newLogger(c)
		application, err := newHeadlessApp(c, logger, 1280, 960)
		if err != nil {
			return err
		}
		path := c.Path("out")
		if path == "" {
			return application.WriteEmbed(c.App.Writer)
		}
		if err := writeFile(path, application.WriteEmbed); err != nil {
			return err
		}
		logger.Info("Embed written", slog.String("path", path))
		return nil
	},
}

var snapshotCommand = &cli.Command{
	Name:  "snapshot",
	Usage: "render frames headlessly and write the last one as PNG",
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:     "out",
			Aliases:  []string{"o"},
			Usage:    "output PNG file",
			Required: true,
		},
		&cli.IntFlag{Name: "frames", Value: 120, Usage: "frames to simulate before capturing"},
		&cli.IntFlag{Name: "width", Value: 1280},
		&cli.IntFlag{Name: "height", Value: 960},
	},
	Action: func(c *cli.Context) error {
		logger := newLogger(c)
		w, h := c.Int("width"), c.Int("height")
		application, err := newHeadlessApp(c, logger, w, h)
		if err != nil {
			return err
		}

		raster := render.NewRaster(w, h)
		now := time.Now()
		frames := max(c.Int("frames"), 1)
		for i := 0; i < frames-1; i++ {
			application.Frame(now, render.Discard)
			now = now.Add(frameInterval)
		}
		application.Frame(now, raster)
		raster.Blur(float64(application.Settings().Blur))

		path := c.Path("out")
		if err := writeFile(path, raster.WritePNG); err != nil {
			return err
		}
		logger.Info("Snapshot written",
			slog.String("path", path),
			slog.Int("frames", frames),
			slog.Int("particles", application.Stats().Particles),
		)
		return nil
	},
}

func newHeadlessApp(c *cli.Context, logger *slog.Logger, w, h int) (*app.App, error) {
	settings, err := loadSettings(c, logger, w)
	if err != nil {
		return nil, err
	}
	return app.New(settings, newRand(c, logger), w, h, logger)
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
