// Package export renders the current field configuration as a standalone HTML
// document. The document carries the adjusted palette and every scalar
// parameter as literals together with its own copy of the sampler and the
// particle loop, so it shares no state with the process that produced it.
package export

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/irfansharif/fluid/internal/config"
	"github.com/irfansharif/fluid/internal/field"
	"github.com/irfansharif/fluid/internal/palette"
)

//go:embed embed.html.tmpl
var embedSource string

var embedTemplate = template.Must(template.New("embed").Parse(embedSource))

// Snapshot is the state frozen into an embed document.
type Snapshot struct {
	Colors     []palette.RGB // adjusted palette
	Blur       int
	Radius     float64
	Shadow     int
	Count      int
	Smoothness float64
	Speed      float64
}

// NewSnapshot freezes s and the adjusted palette derived from it.
func NewSnapshot(s config.Settings, adjusted []palette.RGB) Snapshot {
	return Snapshot{
		Colors:     append([]palette.RGB(nil), adjusted...),
		Blur:       s.Blur,
		Radius:     s.Radius,
		Shadow:     s.Shadow,
		Count:      s.Count,
		Smoothness: s.Smoothness,
		Speed:      s.Speed,
	}
}

// templateData holds every value pre-formatted as a JavaScript literal.
type templateData struct {
	Background       string
	Colors           string
	Blur             string
	Radius           string
	Shadow           string
	Count            string
	Smoothness       string
	Speed            string
	PushRadius       string
	Easing           string
	ReturnStep       string
	ReturnCooldownMs string
	InactivityMs     string
	MaxPhase         string
	InitialProgress  string
}

// Write renders the embed document for snap into w.
func Write(w io.Writer, snap Snapshot) error {
	if len(snap.Colors) < palette.MinSize {
		return fmt.Errorf("embed: %w: %d entries", palette.ErrPaletteTooSmall, len(snap.Colors))
	}

	quoted := make([]string, len(snap.Colors))
	for i, c := range snap.Colors {
		quoted[i] = "'" + c.Hex() + "'"
	}

	data := templateData{
		Background:       snap.Colors[0].Hex(),
		Colors:           strings.Join(quoted, ", "),
		Blur:             fmt.Sprint(snap.Blur),
		Radius:           config.FormatNumber(snap.Radius),
		Shadow:           fmt.Sprint(snap.Shadow),
		Count:            fmt.Sprint(snap.Count),
		Smoothness:       config.FormatNumber(snap.Smoothness),
		Speed:            config.FormatNumber(snap.Speed),
		PushRadius:       config.FormatNumber(field.PushRadius),
		Easing:           config.FormatNumber(field.ColorEasing),
		ReturnStep:       config.FormatNumber(field.ReturnStep),
		ReturnCooldownMs: fmt.Sprint(field.ReturnCooldown.Milliseconds()),
		InactivityMs:     fmt.Sprint(field.InactivityWindow.Milliseconds()),
		MaxPhase:         config.FormatNumber(field.MaxPhase),
		InitialProgress:  config.FormatNumber(field.InitialProgress),
	}
	if err := embedTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("embed: rendering template: %w", err)
	}
	return nil
}
