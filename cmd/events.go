package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/fluid/internal/app"
	"github.com/irfansharif/fluid/internal/palette"
	"github.com/irfansharif/fluid/internal/render"
)

// Per-press steps of the keyboard "sliders".
const (
	offsetStep     = 5
	blurStep       = 10
	radiusStep     = 5.0
	shadowStep     = 1
	countStep      = 10
	speedStep      = 0.1
	smoothnessStep = 0.2
)

// eventHandlers manages all event handling for the application.
type eventHandlers struct {
	window      *glfw.Window
	application *app.App
	renderer    *render.Renderer
	compositor  *render.Compositor
	logger      *slog.Logger

	shareBase string // base URL of share links
	embedPath string // where E writes the embed document

	// ':' opens an input buffer for a palette edit ("index,rrggbb"). Characters
	// accumulate until Enter commits or Escape discards it.
	inputActive bool
	inputBuffer string
}

func newEventHandlers(
	window *glfw.Window,
	application *app.App,
	renderer *render.Renderer,
	compositor *render.Compositor,
	logger *slog.Logger,
	shareBase, embedPath string,
) *eventHandlers {
	eh := &eventHandlers{
		window:      window,
		application: application,
		renderer:    renderer,
		compositor:  compositor,
		logger:      logger,
		shareBase:   shareBase,
		embedPath:   embedPath,
	}
	eh.setupCallbacks()
	return eh
}

// setupCallbacks configures all GLFW event callbacks.
func (eh *eventHandlers) setupCallbacks() {
	eh.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods)
	})
	eh.window.SetCharCallback(func(_ *glfw.Window, char rune) {
		eh.handleChar(char) // for the palette edit buffer
	})
	eh.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		eh.application.MovePointer(xpos, ypos, time.Now())
	})
	eh.window.SetSizeCallback(func(_ *glfw.Window, newW, newH int) {
		eh.application.Resize(newW, newH)
		eh.renderer.SetSize(newW, newH)
	})
	eh.window.SetFramebufferSizeCallback(func(_ *glfw.Window, newW, newH int) {
		if err := eh.compositor.Resize(newW, newH); err != nil {
			eh.logger.Error("Failed to resize framebuffers", slog.Any("error", err))
		}
	})
}

// pixelRatio is the number of framebuffer pixels per window coordinate.
func (eh *eventHandlers) pixelRatio() float64 {
	w, _ := eh.window.GetSize()
	fw, _ := eh.window.GetFramebufferSize()
	if w <= 0 {
		return 1
	}
	return float64(fw) / float64(w)
}

// handleKey handles keyboard input events.
func (eh *eventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	if eh.inputActive {
		eh.handleInputKey(key, action)
		return
	}

	// Actions available in view-only mode.
	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		eh.window.SetShouldClose(true)
		return
	case glfw.KeyU:
		if action == glfw.Press {
			eh.copyShareURL()
		}
		return
	case glfw.KeyE:
		if action == glfw.Press {
			eh.writeEmbed()
		}
		return
	}

	a := eh.application
	s := a.Settings()
	sign := 1
	if (mods & glfw.ModShift) != 0 {
		sign = -1
	}

	var err error
	switch key {
	case glfw.KeyH:
		o := s.Offsets
		o.Hue += sign * offsetStep
		err = a.SetOffsets(o)
	case glfw.KeyS:
		o := s.Offsets
		o.Saturation += sign * offsetStep
		err = a.SetOffsets(o)
	case glfw.KeyL:
		o := s.Offsets
		o.Lightness += sign * offsetStep
		err = a.SetOffsets(o)
	case glfw.KeyR:
		err = a.ResetOffsets()
	case glfw.KeyN:
		if action == glfw.Press {
			err = a.RandomizePalette()
		}
	case glfw.KeyB:
		err = a.SetBlur(s.Blur + sign*blurStep)
	case glfw.KeyRightBracket:
		err = a.SetRadius(s.Radius + radiusStep)
	case glfw.KeyLeftBracket:
		err = a.SetRadius(s.Radius - radiusStep)
	case glfw.KeyPeriod:
		err = a.SetShadow(s.Shadow + shadowStep)
	case glfw.KeyComma:
		err = a.SetShadow(s.Shadow - shadowStep)
	case glfw.KeyEqual:
		err = a.SetCount(s.Count + countStep)
	case glfw.KeyMinus:
		err = a.SetCount(s.Count - countStep)
	case glfw.KeyV:
		err = a.SetSpeed(s.Speed + float64(sign)*speedStep)
	case glfw.KeyM:
		err = a.SetSmoothness(s.Smoothness + float64(sign)*smoothnessStep)
	default:
		return
	}
	eh.report(err)
}

// handleChar feeds typed characters into the palette edit buffer. ':' opens
// it.
func (eh *eventHandlers) handleChar(char rune) {
	if !eh.inputActive {
		if char == ':' && !eh.application.ViewOnly() {
			eh.inputActive = true
			eh.inputBuffer = ""
			eh.window.SetTitle("Fluid (edit: index,rrggbb)")
		}
		return
	}
	eh.inputBuffer += string(char)
	eh.window.SetTitle(fmt.Sprintf("Fluid (edit: %s)", eh.inputBuffer))
}

// handleInputKey handles the non-character keys of the edit buffer.
func (eh *eventHandlers) handleInputKey(key glfw.Key, action glfw.Action) {
	switch key {
	case glfw.KeyEnter, glfw.KeyKPEnter:
		if action != glfw.Press {
			return
		}
		input := eh.inputBuffer
		eh.inputActive, eh.inputBuffer = false, ""
		index, hex, err := app.ParseEdit(input)
		if err == nil {
			err = eh.application.EditColor(index, hex)
		}
		eh.report(err)
	case glfw.KeyEscape:
		eh.inputActive, eh.inputBuffer = false, ""
	case glfw.KeyBackspace:
		if n := len(eh.inputBuffer); n > 0 {
			eh.inputBuffer = eh.inputBuffer[:n-1]
		}
	}
}

// report logs a failed edit. Refusals in view-only mode are expected and only
// logged at debug level.
func (eh *eventHandlers) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, app.ErrViewOnly):
		eh.logger.Debug("Edit ignored", slog.Any("error", err))
	case errors.Is(err, palette.ErrMalformedHex), errors.Is(err, app.ErrMalformedEdit), errors.Is(err, palette.ErrIndexOutOfRange):
		eh.logger.Warn("Edit rejected", slog.Any("error", err))
	default:
		eh.logger.Error("Edit failed", slog.Any("error", err))
	}
}

// copyShareURL puts the share link on the clipboard. A clipboard failure only
// logs a warning; the link is logged either way so it is never lost.
func (eh *eventHandlers) copyShareURL() {
	link, err := eh.application.ShareURL(eh.shareBase)
	if err != nil {
		eh.logger.Error("Failed to build share link", slog.Any("error", err))
		return
	}
	if err := eh.setClipboard(link); err != nil {
		eh.logger.Warn("Could not copy share link", slog.String("url", link), slog.Any("error", err))
		return
	}
	eh.logger.Info("Share link copied", slog.String("url", link))
}

// setClipboard converts the panics glfw raises for platform errors into an
// error.
func (eh *eventHandlers) setClipboard(text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard: %v", r)
		}
	}()
	eh.window.SetClipboardString(text)
	return nil
}

func (eh *eventHandlers) writeEmbed() {
	if err := writeFile(eh.embedPath, eh.application.WriteEmbed); err != nil {
		eh.logger.Error("Failed to write embed", slog.String("path", eh.embedPath), slog.Any("error", err))
		return
	}
	eh.logger.Info("Embed written", slog.String("path", eh.embedPath))
}
