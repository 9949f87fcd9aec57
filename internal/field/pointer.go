package field

import (
	"time"

	"github.com/irfansharif/fluid/internal/geom"
)

// InactivityWindow is how long after the last move the pointer still counts
// as active.
const InactivityWindow = time.Second

// Pointer tracks the last known pointer position and when it last moved.
// Activity is derived from recency on every query, so there is no timer to
// reset or cancel.
type Pointer struct {
	Pos      geom.Point
	lastMove time.Time
	moved    bool
}

// NewPointer returns an inactive pointer resting at pos.
func NewPointer(pos geom.Point) *Pointer {
	return &Pointer{Pos: pos}
}

// Move records a movement event.
func (p *Pointer) Move(x, y float64, now time.Time) {
	p.Pos = geom.MakePoint(x, y)
	p.lastMove = now
	p.moved = true
}

// Active reports whether a movement happened within the inactivity window.
func (p *Pointer) Active(now time.Time) bool {
	return p.moved && now.Sub(p.lastMove) < InactivityWindow
}
