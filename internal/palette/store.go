package palette

import (
	"errors"
	"fmt"
	"math/rand"
)

// MinSize is the smallest palette the cyclic sampler can walk: entry 0 is the
// pivot, and at least two more stops are needed to interpolate between.
const MinSize = 3

// RandomSize is the number of entries produced by Randomize by default.
const RandomSize = 7

var (
	ErrPaletteTooSmall = errors.New("palette too small")
	ErrIndexOutOfRange = errors.New("palette index out of range")
)

// Default is the palette the field starts with.
var Default = []RGB{
	MustParseHex("#fffd8c"),
	MustParseHex("#97fff4"),
	MustParseHex("#ff6b6b"),
	MustParseHex("#7091f5"),
	MustParseHex("#d6a3ff"),
	MustParseHex("#bae9bd"),
	MustParseHex("#535ef9"),
}

// Store holds the base palette as the source of truth together with the
// global offsets, and the adjusted palette derived from both. The adjusted
// palette is always rebuilt in full; it is never patched entry by entry.
type Store struct {
	base     []RGB
	offsets  Offsets
	adjusted []RGB
}

// NewStore creates a store over a copy of base.
func NewStore(base []RGB, o Offsets) (*Store, error) {
	s := &Store{offsets: o}
	if err := s.LoadBase(base); err != nil {
		return nil, err
	}
	return s, nil
}

// SetOffsets replaces the global offsets and re-derives every adjusted color.
func (s *Store) SetOffsets(o Offsets) {
	s.offsets = o
	s.rederive()
}

// LoadOffsets is SetOffsets under the name used when restoring configuration.
func (s *Store) LoadOffsets(o Offsets) { s.SetOffsets(o) }

// LoadBase replaces the base palette wholesale.
func (s *Store) LoadBase(colors []RGB) error {
	if len(colors) < MinSize {
		return fmt.Errorf("%w: %d entries, need at least %d", ErrPaletteTooSmall, len(colors), MinSize)
	}
	s.base = append([]RGB(nil), colors...)
	s.rederive()
	return nil
}

// EditAdjusted sets entry i so that its adjusted color becomes want under the
// current offsets. The base entry is solved through Inverse and then the whole
// adjusted palette is re-derived, not just entry i.
func (s *Store) EditAdjusted(i int, want RGB) error {
	if i < 0 || i >= len(s.base) {
		return fmt.Errorf("%w: %d (palette has %d entries)", ErrIndexOutOfRange, i, len(s.base))
	}
	s.base[i] = Inverse(want, s.offsets)
	s.rederive()
	return nil
}

// Randomize replaces the base palette with n uniformly random colors and resets
// the offsets to neutral.
func (s *Store) Randomize(r *rand.Rand, n int) error {
	if n < MinSize {
		return fmt.Errorf("%w: asked for %d entries", ErrPaletteTooSmall, n)
	}
	base := make([]RGB, n)
	for i := range base {
		v := r.Intn(0xffffff)
		base[i] = RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
	}
	s.base = base
	s.offsets = Offsets{}
	s.rederive()
	return nil
}

// Base returns a copy of the base palette.
func (s *Store) Base() []RGB { return append([]RGB(nil), s.base...) }

// Adjusted returns a copy of the adjusted palette.
func (s *Store) Adjusted() []RGB { return append([]RGB(nil), s.adjusted...) }

// Palette returns the adjusted palette without copying. Callers must not
// modify it; it is replaced on the next edit.
func (s *Store) Palette() []RGB { return s.adjusted }

// Offsets returns the current global offsets.
func (s *Store) Offsets() Offsets { return s.offsets }

// Len returns the number of palette entries.
func (s *Store) Len() int { return len(s.base) }

// Background is the first adjusted entry, used to clear the surface.
func (s *Store) Background() RGB { return s.adjusted[0] }

func (s *Store) rederive() {
	if s.offsets.IsNeutral() {
		s.adjusted = append([]RGB(nil), s.base...)
		return
	}
	s.adjusted = Adjust(s.base, s.offsets)
}
