package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Compositor renders the frame offscreen and presents it through a two-pass
// gaussian blur, the way a backdrop blur sits over the disc layer.
//
//	Begin -> draw discs -> Present(blur)
//
// Pass one blurs horizontally from the scene texture into the scratch texture;
// pass two blurs vertically from scratch to the default framebuffer.
type Compositor struct {
	w, h int

	blur                       *program
	uScene, uDir, uTexel, uSig int32
	quadVAO, quadVBO           uint32

	fbo [2]uint32 // scene, scratch
	tex [2]uint32
}

// NewCompositor compiles the blur shader and allocates framebuffers of the
// given size. It must be called with a current GL context.
func NewCompositor(w, h int) (*Compositor, error) {
	blur, err := newProgram(quadVertexShaderSource, blurFragmentShaderSource)
	if err != nil {
		return nil, err
	}
	c := &Compositor{
		blur:   blur,
		uScene: blur.uniform("uScene"),
		uDir:   blur.uniform("uDirection"),
		uTexel: blur.uniform("uTexel"),
		uSig:   blur.uniform("uSigma"),
	}

	quad := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	gl.GenVertexArrays(1, &c.quadVAO)
	gl.GenBuffers(1, &c.quadVBO)
	gl.BindVertexArray(c.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 8, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenFramebuffers(2, &c.fbo[0])
	gl.GenTextures(2, &c.tex[0])
	if err := c.Resize(w, h); err != nil {
		c.Delete()
		return nil, err
	}
	return c, nil
}

// Resize reallocates the offscreen targets.
func (c *Compositor) Resize(w, h int) error {
	c.w, c.h = max(w, 1), max(h, 1)
	for i := range c.fbo {
		gl.BindTexture(gl.TEXTURE_2D, c.tex[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(c.w), int32(c.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

		gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo[i])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, c.tex[i], 0)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return fmt.Errorf("framebuffer %d incomplete (status 0x%x)", i, status)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// Begin binds the scene framebuffer; subsequent drawing lands offscreen.
func (c *Compositor) Begin() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo[0])
	gl.Viewport(0, 0, int32(c.w), int32(c.h))
}

// Present blurs the scene by sigma pixels onto the default framebuffer.
func (c *Compositor) Present(sigma float64) {
	gl.Disable(gl.BLEND)
	c.blur.use()
	gl.Uniform1i(c.uScene, 0)
	gl.Uniform2f(c.uTexel, 1/float32(c.w), 1/float32(c.h))
	gl.Uniform1f(c.uSig, float32(sigma))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(c.quadVAO)

	// Horizontal: scene -> scratch.
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo[1])
	gl.Viewport(0, 0, int32(c.w), int32(c.h))
	gl.BindTexture(gl.TEXTURE_2D, c.tex[0])
	gl.Uniform2f(c.uDir, 1, 0)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	// Vertical: scratch -> screen.
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, c.tex[1])
	gl.Uniform2f(c.uDir, 0, 1)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Delete releases the GL objects.
func (c *Compositor) Delete() {
	gl.DeleteFramebuffers(2, &c.fbo[0])
	gl.DeleteTextures(2, &c.tex[0])
	gl.DeleteBuffers(1, &c.quadVBO)
	gl.DeleteVertexArrays(1, &c.quadVAO)
	c.blur.delete()
}
