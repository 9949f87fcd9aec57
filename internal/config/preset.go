package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/irfansharif/fluid/internal/palette"
)

// preset mirrors the parameter keys. Pointer fields distinguish absent keys
// from zero values, so a preset may set only what it cares about.
type preset struct {
	Blur       *float64 `yaml:"blur"`
	Radius     *float64 `yaml:"radius"`
	Shadow     *float64 `yaml:"shadow"`
	Count      *int     `yaml:"count"`
	Smoothness *float64 `yaml:"smoothness"`
	Speed      *float64 `yaml:"speed"`
	BaseColors []string `yaml:"baseColors"`
	Hue        *int     `yaml:"hue"`
	Sat        *int     `yaml:"sat"`
	Light      *int     `yaml:"light"`
	ViewOnly   *bool    `yaml:"viewOnly"`
}

// LoadPreset reads a YAML preset file and applies it onto s.
func LoadPreset(path string, s *Settings) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening preset: %w", err)
	}
	defer f.Close()
	if err := ReadPreset(f, s); err != nil {
		return fmt.Errorf("preset %s: %w", path, err)
	}
	return nil
}

// ReadPreset decodes a YAML preset from r and applies it onto s. Palette
// entries may be hex strings or SVG color names ("coral", "teal").
func ReadPreset(r io.Reader, s *Settings) error {
	var p preset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal preset: %w", err)
	}

	var errs []error
	nonNegative := func(key string, f *float64) bool {
		if f == nil {
			return false
		}
		if err := checkRange(key, *f); err != nil {
			errs = append(errs, err)
			return false
		}
		return true
	}

	if nonNegative(KeyBlur, p.Blur) {
		s.Blur = int(math.Round(*p.Blur))
	}
	if nonNegative(KeyRadius, p.Radius) {
		s.Radius = *p.Radius
	}
	if nonNegative(KeyShadow, p.Shadow) {
		s.Shadow = int(math.Round(*p.Shadow))
	}
	if p.Count != nil {
		if err := checkRange(KeyCount, float64(*p.Count)); err != nil {
			errs = append(errs, err)
		} else {
			s.Count = *p.Count
		}
	}
	if nonNegative(KeySmoothness, p.Smoothness) {
		s.Smoothness = *p.Smoothness
	}
	if nonNegative(KeySpeed, p.Speed) {
		s.Speed = *p.Speed
	}
	if p.BaseColors != nil {
		if colors, err := presetColors(p.BaseColors); err != nil {
			errs = append(errs, err)
		} else {
			s.BaseColors = colors
		}
	}
	if p.Hue != nil {
		s.Offsets.Hue = *p.Hue
	}
	if p.Sat != nil {
		s.Offsets.Saturation = *p.Sat
	}
	if p.Light != nil {
		s.Offsets.Lightness = *p.Light
	}
	if p.ViewOnly != nil {
		s.ViewOnly = *p.ViewOnly
	}
	return errors.Join(errs...)
}

func presetColors(entries []string) ([]palette.RGB, error) {
	colors := make([]palette.RGB, 0, len(entries))
	for _, entry := range entries {
		if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(entry))]; ok {
			colors = append(colors, palette.RGB{R: named.R, G: named.G, B: named.B})
			continue
		}
		c, err := palette.ParseHex(entry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyBaseColors, err)
		}
		colors = append(colors, c)
	}
	if len(colors) < palette.MinSize {
		return nil, fmt.Errorf("%s: %w: %d entries", KeyBaseColors, palette.ErrPaletteTooSmall, len(colors))
	}
	return colors, nil
}
