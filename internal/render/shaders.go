package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex shader for disc geometry. Applies the uniform transformation matrix
// to the vertices and forwards the color to the fragment shader.
const shapeVertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uTransform;

out vec4 vColor;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

// Fragment shader. Simply applies the vertex-shader forwarded color.
const shapeFragmentShaderSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// Full-screen triangle strip for the compositing passes. Positions are in NDC.
const quadVertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;

out vec2 vUV;

void main() {
    vUV = aPos * 0.5 + 0.5;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

// One direction of a separable gaussian blur. uSigma is in pixels; the kernel
// spans three standard deviations either side and is sampled at blurTaps
// points per side, leaning on linear filtering between them.
const blurFragmentShaderSource = `
#version 330 core
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uScene;
uniform vec2 uDirection; // (1,0) or (0,1)
uniform vec2 uTexel;     // 1 / framebuffer size
uniform float uSigma;

const int blurTaps = 32;

void main() {
    if (uSigma < 0.5) {
        FragColor = texture(uScene, vUV);
        return;
    }
    float spacing = max(3.0 * uSigma / float(blurTaps), 1.0);
    vec2 offset = uDirection * uTexel * spacing;

    vec4 sum = texture(uScene, vUV);
    float total = 1.0;
    for (int i = 1; i <= blurTaps; i++) {
        float x = float(i) * spacing;
        float w = exp(-0.5 * x * x / (uSigma * uSigma));
        sum += w * (texture(uScene, vUV + float(i) * offset) + texture(uScene, vUV - float(i) * offset));
        total += 2.0 * w;
    }
    FragColor = sum / total;
}
` + "\x00"

// program is a linked shader program.
type program struct {
	id uint32
}

// newProgram compiles and links a vertex and fragment shader pair.
func newProgram(vertexSource, fragmentSource string) (*program, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	// Link shader program.
	id := gl.CreateProgram()
	gl.AttachShader(id, vertexShader)
	gl.AttachShader(id, fragmentShader)
	gl.LinkProgram(id)

	// Check linking status.
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("shader linking failed: %s", strings.TrimRight(logText, "\x00"))
	}
	return &program{id: id}, nil
}

func (p *program) use() { gl.UseProgram(p.id) }

// uniform looks up a uniform location by name.
func (p *program) uniform(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

func (p *program) delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// compileShader compiles a single shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	// Check compilation status.
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %s", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}
