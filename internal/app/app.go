// Package app ties the palette, the particle field and the configuration
// together into the state a frame loop drives. All state is owned by App;
// time and randomness come in from the caller.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/irfansharif/fluid/internal/config"
	"github.com/irfansharif/fluid/internal/export"
	"github.com/irfansharif/fluid/internal/field"
	"github.com/irfansharif/fluid/internal/geom"
	"github.com/irfansharif/fluid/internal/palette"
	"github.com/irfansharif/fluid/internal/render"
)

// ErrViewOnly is returned by every editing operation once the configuration
// asked for view-only mode.
var ErrViewOnly = errors.New("view-only mode")

// App encapsulates the field and its configuration.
type App struct {
	logger   *slog.Logger
	rng      *rand.Rand
	settings config.Settings // palette lives in store, not here
	store    *palette.Store
	field    *field.Field
	pointer  *field.Pointer
	stats    Stats
}

// Stats tracks per-frame metrics.
type Stats struct {
	Frames          int     // frames drawn so far
	Particles       int     // particles in the last frame
	LastFrameTimeUs float64 // time spent in the last Frame() call in microseconds
}

// New builds an App over a w by h canvas. Loaded settings are clamped to the
// same limits the setters enforce. The pointer starts at rest in the middle of
// the canvas.
func New(s config.Settings, rng *rand.Rand, w, h int, logger *slog.Logger) (*App, error) {
	s = clampSettings(s)
	store, err := palette.NewStore(s.BaseColors, palette.Offsets{})
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	store.LoadOffsets(s.Offsets.Clamped())
	s.BaseColors, s.Offsets = nil, palette.Offsets{}

	a := &App{
		logger:   logger,
		rng:      rng,
		settings: s,
		store:    store,
		field:    field.New(rng, float64(w), float64(h), s.Count, s.Speed),
		pointer:  field.NewPointer(geom.MakePoint(float64(w)/2, float64(h)/2)),
	}
	logger.Info("Field initialized",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Int("count", s.Count),
		slog.Int("palette", store.Len()),
		slog.Bool("view_only", s.ViewOnly),
	)
	return a, nil
}

// Frame runs one update and draw pass: clear to the first adjusted color, step
// the field, then paint every particle in order.
func (a *App) Frame(now time.Time, s render.Surface) {
	startTime := time.Now()

	s.Clear(a.store.Background().RGBA())
	a.field.Step(now, a.pointer, a.store.Palette(), field.Motion{
		Radius:     a.settings.Radius,
		Smoothness: a.settings.Smoothness,
	})
	shadow := float64(a.settings.Shadow)
	for _, p := range a.field.Particles() {
		s.FillCircle(p.Pos, a.settings.Radius, p.Color.RGBA(), shadow)
	}

	a.stats.Frames++
	a.stats.Particles = a.field.Len()
	a.stats.LastFrameTimeUs = float64(time.Since(startTime).Microseconds())
}

// MovePointer records a pointer movement. It is honored in view-only mode.
func (a *App) MovePointer(x, y float64, now time.Time) {
	a.pointer.Move(x, y, now)
}

// Resize updates the canvas extent.
func (a *App) Resize(w, h int) {
	if fw, fh := a.field.Size(); fw == float64(w) && fh == float64(h) {
		return
	}
	a.field.Resize(float64(w), float64(h))
	a.logger.Debug("Canvas resized", slog.Int("width", w), slog.Int("height", h))
}

// Settings returns the full current configuration, palette included.
func (a *App) Settings() config.Settings {
	s := a.settings
	s.BaseColors = a.store.Base()
	s.Offsets = a.store.Offsets()
	return s
}

// ViewOnly reports whether editing is disabled.
func (a *App) ViewOnly() bool { return a.settings.ViewOnly }

// Adjusted returns a copy of the palette the field is sampling.
func (a *App) Adjusted() []palette.RGB { return a.store.Adjusted() }

// Stats returns the current frame statistics.
func (a *App) Stats() Stats { return a.stats }

// ShareURL encodes the current configuration onto base.
func (a *App) ShareURL(base string) (string, error) {
	return config.ShareURL(base, a.Settings(), a.store.Adjusted())
}

// WriteEmbed writes a standalone document reproducing the current field.
func (a *App) WriteEmbed(w io.Writer) error {
	return export.Write(w, export.NewSnapshot(a.Settings(), a.store.Adjusted()))
}

func (a *App) checkEditable(op string) error {
	if a.settings.ViewOnly {
		return fmt.Errorf("%s: %w", op, ErrViewOnly)
	}
	return nil
}
