package app

import (
	"log/slog"

	"github.com/irfansharif/fluid/internal/config"
)

// Limit is the inclusive range a visual parameter is clamped to.
type Limit struct {
	Min, Max float64
}

func (l Limit) clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	} else if v > l.Max {
		return l.Max
	}
	return v
}

var (
	BlurLimit       = Limit{0, 300}
	RadiusLimit     = Limit{1, 400}
	ShadowLimit     = Limit{0, 100}
	CountLimit      = Limit{0, 1000}
	SmoothnessLimit = Limit{0, 20}
	SpeedLimit      = Limit{0, 10}
)

func clampSettings(s config.Settings) config.Settings {
	s.Blur = int(BlurLimit.clamp(float64(s.Blur)))
	s.Radius = RadiusLimit.clamp(s.Radius)
	s.Shadow = int(ShadowLimit.clamp(float64(s.Shadow)))
	s.Count = int(CountLimit.clamp(float64(s.Count)))
	s.Smoothness = SmoothnessLimit.clamp(s.Smoothness)
	s.Speed = SpeedLimit.clamp(s.Speed)
	return s
}

// SetBlur sets the compositing blur, clamping to BlurLimit.
func (a *App) SetBlur(px int) error {
	if err := a.checkEditable("set blur"); err != nil {
		return err
	}
	a.settings.Blur = int(BlurLimit.clamp(float64(px)))
	a.logger.Debug("Blur updated", slog.Int("blur", a.settings.Blur))
	return nil
}

// SetRadius sets the disc radius, which is also the wrap margin.
func (a *App) SetRadius(px float64) error {
	if err := a.checkEditable("set radius"); err != nil {
		return err
	}
	a.settings.Radius = RadiusLimit.clamp(px)
	a.logger.Debug("Radius updated", slog.Float64("radius", a.settings.Radius))
	return nil
}

// SetShadow sets the per-disc shadow blur.
func (a *App) SetShadow(px int) error {
	if err := a.checkEditable("set shadow"); err != nil {
		return err
	}
	a.settings.Shadow = int(ShadowLimit.clamp(float64(px)))
	a.logger.Debug("Shadow updated", slog.Int("shadow", a.settings.Shadow))
	return nil
}

// SetCount regenerates the field with n particles.
func (a *App) SetCount(n int) error {
	if err := a.checkEditable("set count"); err != nil {
		return err
	}
	a.settings.Count = int(CountLimit.clamp(float64(n)))
	a.field.Reset(a.settings.Count)
	a.logger.Debug("Particles regenerated", slog.Int("count", a.settings.Count))
	return nil
}

// SetSmoothness sets the push-away strength.
func (a *App) SetSmoothness(v float64) error {
	if err := a.checkEditable("set smoothness"); err != nil {
		return err
	}
	a.settings.Smoothness = SmoothnessLimit.clamp(v)
	a.logger.Debug("Smoothness updated", slog.Float64("smoothness", a.settings.Smoothness))
	return nil
}

// SetSpeed sets the drift speed and draws fresh velocities for every particle.
func (a *App) SetSpeed(v float64) error {
	if err := a.checkEditable("set speed"); err != nil {
		return err
	}
	a.settings.Speed = SpeedLimit.clamp(v)
	a.field.SetSpeed(a.settings.Speed)
	a.logger.Debug("Speed updated", slog.Float64("speed", a.settings.Speed))
	return nil
}
