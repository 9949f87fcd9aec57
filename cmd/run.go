package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli/v2"

	"github.com/irfansharif/fluid/internal/app"
	"github.com/irfansharif/fluid/internal/render"
)

const (
	defaultWidth  = 1280
	defaultHeight = 960
)

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "open the interactive window (default)",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "width", Value: defaultWidth},
		&cli.IntFlag{Name: "height", Value: defaultHeight},
		&cli.PathFlag{
			Name:  "embed-out",
			Value: "fluid-embed.html",
			Usage: "file the E key writes the embed document to",
		},
	},
	Action: run,
}

func makeTitle(fps, avgFrameTime float64, appStats app.Stats, renderStats render.Stats) string {
	return fmt.Sprintf("Fluid (%.1f FPS, %.2fms/frame, %d discs, %d triangles, %.2fµs/flush)",
		fps,
		avgFrameTime,
		appStats.Particles,
		renderStats.Triangles,
		renderStats.LastFlushTimeUs,
	)
}

func run(c *cli.Context) error {
	logger := newLogger(c)
	width, height := intOr(c.Int("width"), defaultWidth), intOr(c.Int("height"), defaultHeight)
	settings, err := loadSettings(c, logger, width)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(
		width, height,
		"Fluid",
		nil, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync paces the frame loop

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	w, h := window.GetSize()
	fw, fh := window.GetFramebufferSize()
	application, err := app.New(settings, newRand(c, logger), w, h, logger)
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(w, h)
	if err != nil {
		return err
	}
	defer renderer.Delete()
	compositor, err := render.NewCompositor(fw, fh)
	if err != nil {
		return err
	}
	defer compositor.Delete()

	embedPath := c.Path("embed-out")
	if embedPath == "" {
		embedPath = "fluid-embed.html"
	}
	handlers := newEventHandlers(window, application, renderer, compositor, logger, c.String("base"), embedPath)
	if application.ViewOnly() {
		logger.Info("View-only mode, editing keys are disabled")
	}

	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()
	var lastFlushErr string

	// Main loop.
	for !window.ShouldClose() {
		frameStart := time.Now()

		compositor.Begin()
		application.Frame(frameStart, renderer)
		if err := renderer.Flush(); err != nil && err.Error() != lastFlushErr {
			lastFlushErr = err.Error()
			logger.Error("Frame incomplete", slog.Any("error", err))
		}
		compositor.Present(float64(application.Settings().Blur) * handlers.pixelRatio())

		window.SwapBuffers()
		glfw.PollEvents()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			appStats, renderStats := application.Stats(), renderer.Stats()
			window.SetTitle(makeTitle(fps, avgFrameTime, appStats, renderStats))
			logger.Debug("Performance statistics",
				slog.Float64("fps", fps),
				slog.Float64("frame_ms", avgFrameTime),
				slog.Int("discs", renderStats.Discs),
				slog.Int("triangles", renderStats.Triangles),
				slog.Int("buffer_growth", renderStats.GrowthEvents),
				slog.Float64("flush_us", renderStats.LastFlushTimeUs),
				slog.Float64("step_us", appStats.LastFrameTimeUs),
			)
		}
	}
	return nil
}

func intOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
