package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/irfansharif/fluid/internal/palette"
)

// SetOffsets replaces the global hue, saturation and lightness offsets,
// clamped to their ranges, and re-derives the adjusted palette.
func (a *App) SetOffsets(o palette.Offsets) error {
	if err := a.checkEditable("set offsets"); err != nil {
		return err
	}
	a.store.SetOffsets(o.Clamped())
	a.logger.Debug("Offsets updated",
		slog.Int("hue", a.store.Offsets().Hue),
		slog.Int("sat", a.store.Offsets().Saturation),
		slog.Int("light", a.store.Offsets().Lightness),
	)
	return nil
}

// ResetOffsets returns every offset to neutral.
func (a *App) ResetOffsets() error {
	return a.SetOffsets(palette.Offsets{})
}

// RandomizePalette replaces the base palette with palette.RandomSize random
// colors and resets the offsets.
func (a *App) RandomizePalette() error {
	if err := a.checkEditable("randomize palette"); err != nil {
		return err
	}
	if err := a.store.Randomize(a.rng, palette.RandomSize); err != nil {
		return err
	}
	a.logger.Info("Palette randomized", slog.String("base", hexList(a.store.Base())))
	return nil
}

// EditColor sets the adjusted color of entry i to hex. The base entry is solved
// so that the current offsets map it onto hex, then the palette is re-derived.
func (a *App) EditColor(i int, hex string) error {
	if err := a.checkEditable("edit color"); err != nil {
		return err
	}
	want, err := palette.ParseHex(hex)
	if err != nil {
		return fmt.Errorf("edit color %d: %w", i, err)
	}
	if err := a.store.EditAdjusted(i, want); err != nil {
		return fmt.Errorf("edit color: %w", err)
	}
	a.logger.Info("Palette entry edited",
		slog.Int("index", i),
		slog.String("requested", want.Hex()),
		slog.String("adjusted", a.store.Adjusted()[i].Hex()),
		slog.String("base", a.store.Base()[i].Hex()),
	)
	return nil
}

// ErrMalformedEdit is returned by ParseEdit for input not of the form
// "index,rrggbb".
var ErrMalformedEdit = errors.New("malformed color edit")

// ParseEdit splits a typed color edit such as "2,#ff8800" or "2 ff8800" into
// the palette index and the hex color. The color itself is validated by
// EditColor.
func ParseEdit(input string) (index int, hex string, err error) {
	input = strings.TrimSpace(input)
	sep := strings.IndexAny(input, ", ")
	if sep == -1 {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedEdit, input)
	}
	index, err = strconv.Atoi(strings.TrimSpace(input[:sep]))
	if err != nil {
		return 0, "", fmt.Errorf("%w: bad index in %q", ErrMalformedEdit, input)
	}
	hex = strings.TrimSpace(input[sep+1:])
	if hex == "" {
		return 0, "", fmt.Errorf("%w: missing color in %q", ErrMalformedEdit, input)
	}
	return index, hex, nil
}

func hexList(colors []palette.RGB) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = c.Hex()
	}
	return strings.Join(parts, ",")
}
