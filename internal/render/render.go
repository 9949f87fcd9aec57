// Package render draws the particle field.
//
// Drawing goes through the Surface interface, which has two implementations:
// 1. Renderer batches discs into a single OpenGL draw call per frame, with
// Compositor applying the full-screen blur on top.
// 2. Raster paints into an in-memory image for headless snapshots.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/fluid/internal/geom"
)

// Surface is what a frame is drawn onto. Discs are painted in call order, each
// over the ones before it.
type Surface interface {
	Size() (w, h int)
	Clear(c color.RGBA)
	// FillCircle paints a disc of the given fill. A positive shadow draws a
	// soft halo of the same color that fades out over that many pixels.
	FillCircle(center geom.Point, radius float64, fill color.RGBA, shadow float64)
}

// Discard is a Surface that draws nothing, for advancing frames that are
// never shown.
var Discard Surface = discard{}

type discard struct{}

func (discard) Size() (w, h int)                                    { return 0, 0 }
func (discard) Clear(color.RGBA)                                    {}
func (discard) FillCircle(geom.Point, float64, color.RGBA, float64) {}

// Stats tracks rendering performance metrics.
type Stats struct {
	Discs           int     // discs drawn in the last frame
	Triangles       int     // triangles drawn in the last frame
	GrowthEvents    int     // vertex buffer reallocations so far
	LastFlushTimeUs float64 // time spent in the last Flush() call in microseconds
}

// Renderer is the OpenGL Surface. FillCircle only appends geometry; nothing
// reaches the GPU until Flush.
type Renderer struct {
	w, h int

	shapes     *program
	uTransform int32
	buffer     *vertexBuffer
	meshes     *meshCache

	vertices []float32
	discs    int
	err      error // first meshing error of the frame
	stats    Stats
}

var _ Surface = (*Renderer)(nil)

// NewRenderer compiles the disc shaders and allocates the vertex buffer. It
// must be called with a current GL context.
func NewRenderer(w, h int) (*Renderer, error) {
	shapes, err := newProgram(shapeVertexShaderSource, shapeFragmentShaderSource)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		shapes:     shapes,
		uTransform: shapes.uniform("uTransform"),
		buffer:     newVertexBuffer(),
		meshes:     newMeshCache(),
	}
	r.SetSize(w, h)
	return r, nil
}

// SetSize updates the logical (window coordinate) size that the screen to NDC
// transform maps from. On high-DPI displays it differs from the framebuffer.
func (r *Renderer) SetSize(w, h int) {
	r.w, r.h = max(w, 1), max(h, 1)
}

func (r *Renderer) Size() (w, h int) { return r.w, r.h }

// Clear fills the bound framebuffer and drops any unflushed geometry. The
// viewport is left to whoever bound the framebuffer.
func (r *Renderer) Clear(c color.RGBA) {
	gl.ClearColor(float32(c.R)/255.0, float32(c.G)/255.0, float32(c.B)/255.0, float32(c.A)/255.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.vertices = r.vertices[:0]
	r.discs = 0
	r.err = nil
}

func (r *Renderer) FillCircle(center geom.Point, radius float64, fill color.RGBA, shadow float64) {
	m, err := r.meshes.get(radius, shadow)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.appendMesh(m.halo, center, fill)
	r.appendMesh(m.fill, center, fill)
	r.discs++
}

func (r *Renderer) appendMesh(m mesh, center geom.Point, fill color.RGBA) {
	cr, cg, cb := float32(fill.R)/255.0, float32(fill.G)/255.0, float32(fill.B)/255.0
	ca := float32(fill.A) / 255.0
	for i, v := range m.verts {
		p := center.Add(v)
		r.vertices = append(r.vertices,
			float32(p.X), float32(p.Y), // position
			cr, cg, cb, ca*m.alpha[i], // color
		)
	}
}

// Flush draws everything appended since the last Clear in a single call. It
// returns the first error FillCircle ran into, if any.
func (r *Renderer) Flush() error {
	startTime := time.Now()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.shapes.use()
	matrix := geom.ScreenToNDC(r.w, r.h).Matrix4()
	gl.UniformMatrix4fv(r.uTransform, 1, false, &matrix[0])
	drawn := r.buffer.draw(r.vertices)

	r.stats = Stats{
		Discs:           r.discs,
		Triangles:       drawn / 3,
		GrowthEvents:    r.buffer.growthEvents,
		LastFlushTimeUs: float64(time.Since(startTime).Microseconds()),
	}
	r.vertices = r.vertices[:0]
	r.discs = 0
	if err := r.err; err != nil {
		r.err = nil
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Stats returns the statistics of the last Flush.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Delete releases the GL objects.
func (r *Renderer) Delete() {
	r.buffer.delete()
	r.shapes.delete()
}
