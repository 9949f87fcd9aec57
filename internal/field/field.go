// Package field animates the set of blurred discs that make up the gradient
// background. Every frame each particle eases its color progress towards its
// distance from the pointer, is pushed away when the pointer is close, drifts
// back towards it when the pointer rests, and drifts along its own velocity
// across a torus that extends one render radius past the canvas edges.
package field

import (
	"math"
	"math/rand"
	"time"

	"github.com/irfansharif/fluid/internal/geom"
	"github.com/irfansharif/fluid/internal/palette"
)

const (
	PushRadius      = 160.0       // pointer distance inside which particles are pushed away
	ColorEasing     = 0.05        // per-frame smoothing rate of color progress
	ReturnStep      = 0.5         // size of the nudge towards a resting pointer
	ReturnCooldown  = time.Second // minimum time between two nudges of the same particle
	MaxPhase        = 0.2         // phase offsets are drawn from [0, MaxPhase)
	InitialProgress = 0.5         // color progress of a freshly created particle
)

// Particle is a single animated disc.
type Particle struct {
	Pos      geom.Point
	Vel      geom.Point
	Phase    float64     // decorrelates this particle's place in the color cycle
	Progress float64     // eased color progress
	Color    palette.RGB // color sampled during the last step

	returnUntil time.Time // no nudges towards the pointer before this
}

// Returning reports whether the particle is inside its return cooldown.
func (p *Particle) Returning(now time.Time) bool {
	return now.Before(p.returnUntil)
}

// Motion carries the per-frame tunables the step reads.
type Motion struct {
	Radius     float64 // render radius, also the wrap margin
	Smoothness float64 // push-away strength
}

// Field owns the particles and the canvas extent they live on.
type Field struct {
	rng       *rand.Rand
	w, h      float64
	speed     float64
	particles []Particle
}

// New creates a field of count particles over a w by h canvas.
func New(rng *rand.Rand, w, h float64, count int, speed float64) *Field {
	f := &Field{rng: rng, w: w, h: h, speed: speed}
	f.Reset(count)
	return f
}

// Reset discards every particle and creates count fresh ones. There is no
// identity carried across a reset.
func (f *Field) Reset(count int) {
	if count < 0 {
		count = 0
	}
	f.particles = make([]Particle, count)
	for i := range f.particles {
		f.particles[i] = Particle{
			Pos:      geom.MakePoint(f.rng.Float64()*f.w, f.rng.Float64()*f.h),
			Vel:      f.velocity(),
			Phase:    f.rng.Float64() * MaxPhase,
			Progress: InitialProgress,
		}
	}
}

// SetSpeed regenerates every velocity for the new speed factor. Positions,
// phases and progress are kept.
func (f *Field) SetSpeed(speed float64) {
	f.speed = speed
	for i := range f.particles {
		f.particles[i].Vel = f.velocity()
	}
}

func (f *Field) velocity() geom.Point {
	return geom.MakePoint((f.rng.Float64()-0.5)*f.speed, (f.rng.Float64()-0.5)*f.speed)
}

// Resize updates the canvas extent. Particles keep their positions and are
// folded back in by the next step's wrap.
func (f *Field) Resize(w, h float64) {
	f.w, f.h = w, h
}

// Size returns the canvas extent.
func (f *Field) Size() (w, h float64) { return f.w, f.h }

// Speed returns the current speed factor.
func (f *Field) Speed() float64 { return f.speed }

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.particles) }

// Particles returns the live particle slice. Callers must not retain it past
// the next Reset.
func (f *Field) Particles() []Particle { return f.particles }

// Step advances every particle by one frame.
func (f *Field) Step(now time.Time, ptr *Pointer, pal []palette.RGB, m Motion) {
	active := ptr.Active(now)
	diagonal := math.Hypot(f.w, f.h)

	for i := range f.particles {
		p := &f.particles[i]

		dist := geom.Dist(p.Pos, ptr.Pos)
		t := 0.0
		if diagonal > 0 {
			t = dist / diagonal
		}
		if active {
			p.Progress += (t - p.Progress) * ColorEasing
		}
		p.Color = palette.Sample(pal, p.Progress, p.Phase)

		if dist < PushRadius {
			away := geom.Polar(geom.Bearing(p.Pos, ptr.Pos), m.Smoothness*(1-t))
			p.Pos = p.Pos.Sub(away)
		}

		if !active && !p.Returning(now) {
			p.Pos = p.Pos.Add(geom.Polar(geom.Bearing(p.Pos, ptr.Pos), ReturnStep))
			p.returnUntil = now.Add(ReturnCooldown)
		}

		p.Pos = geom.Wrap(p.Pos.Add(p.Vel), f.w, f.h, m.Radius)
	}
}
