package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/irfansharif/fluid/internal/geom"
)

// haloSteps bounds the number of concentric rings Raster layers to fake a
// shadow halo.
const haloSteps = 8

// Raster is a Surface over an in-memory image, for rendering without a GL
// context. Each disc only touches the pixels under its bounding box.
type Raster struct {
	img  *image.RGBA
	rast *vector.Rasterizer
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a w by h raster. Non-positive sizes are bumped to one.
func NewRaster(w, h int) *Raster {
	w, h = max(w, 1), max(h, 1)
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		rast: vector.NewRasterizer(w, h),
	}
}

func (r *Raster) Size() (w, h int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Clear(c color.RGBA) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(center geom.Point, radius float64, fill color.RGBA, shadow float64) {
	if radius <= 0 {
		return
	}
	if shadow > 0 {
		steps := min(haloSteps, int(math.Ceil(shadow)))
		// Per-ring opacity such that steps stacked rings reach haloAlpha.
		a := 1 - math.Pow(1-haloAlpha, 1/float64(steps))
		halo := fill
		halo.A = uint8(math.Round(float64(fill.A) * a))
		for i := steps; i >= 1; i-- {
			r.disc(center, radius+shadow*float64(i)/float64(steps), halo)
		}
	}
	r.disc(center, radius, fill)
}

// disc rasterizes one disc inside its bounding box, clipped to the image.
func (r *Raster) disc(center geom.Point, radius float64, c color.RGBA) {
	bbox := image.Rect(
		int(math.Floor(center.X-radius)), int(math.Floor(center.Y-radius)),
		int(math.Ceil(center.X+radius)), int(math.Ceil(center.Y+radius)),
	).Intersect(r.img.Bounds())
	if bbox.Empty() {
		return
	}
	r.rast.Reset(bbox.Dx(), bbox.Dy())
	r.rast.DrawOp = draw.Over

	// Ring vertices are relative to the center; the rasterizer's origin is
	// the top-left of bbox.
	t := geom.Translate(-float64(bbox.Min.X), -float64(bbox.Min.Y)).
		Mul(geom.Translate(center.X, center.Y))
	pts := ring(radius)
	first := t.MulPoint(pts[0])
	r.rast.MoveTo(float32(first.X), float32(first.Y))
	for _, v := range pts[1:] {
		p := t.MulPoint(v)
		r.rast.LineTo(float32(p.X), float32(p.Y))
	}
	r.rast.ClosePath()
	r.rast.Draw(r.img, bbox, image.NewUniform(premultiply(c)), image.Point{})
}

// Blur applies an approximate gaussian blur of standard deviation sigma.
func (r *Raster) Blur(sigma float64) {
	if sigma <= 0 {
		return
	}
	// Three box passes of radius k have variance ((2k+1)^2-1)/4.
	k := int(math.Round((math.Sqrt(4*sigma*sigma+1) - 1) / 2))
	for i := 0; i < 3; i++ {
		BoxBlur(r.img, k)
	}
}

// WritePNG encodes the current image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// premultiply converts a straight-alpha color into the premultiplied form
// image/color expects.
func premultiply(c color.RGBA) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8((uint32(v)*uint32(c.A) + 127) / 255)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
