// Package render draws the anatomy scene to an offscreen framebuffer whose
// color texture the UI embeds as an image.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/camera"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/framebuffer"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/lighting"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/model"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/scene"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/shader"
	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;

void main() {
    vNormal = mat3(uModel) * aNormal;
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
`

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;

uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform vec3 uBaseColor;
uniform vec3 uEmissive;

out vec4 FragColor;

void main() {
    vec3 normal = normalize(vNormal);
    vec3 lightDir = normalize(uLightDir);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 lit = (uAmbient + diff * uDiffuse) * uBaseColor;
    FragColor = vec4(lit + uEmissive, 1.0);
}
`

// meshBuffer holds the GPU resources for one scene entry.
type meshBuffer struct {
	entry      *scene.MeshEntry
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Anatomical base tint, a muted flesh tone. Highlights are added on top as
// emissive color.
var defaultBaseColor = [3]float32{0.78, 0.62, 0.55}

const fovY = 0.785398 // 45 degrees

// Renderer owns the offscreen framebuffer, the shader, and the per-mesh
// vertex buffers for the current model.
type Renderer struct {
	fb      *framebuffer.Framebuffer
	program uint32

	locModel      int32
	locView       int32
	locProjection int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locBaseColor  int32
	locEmissive   int32

	meshes []meshBuffer

	// BaseColor tints untextured geometry. Reset to the default on every
	// model upload.
	BaseColor [3]float32

	// Light is the directional light applied to every mesh.
	Light lighting.Directional
}

// New creates a renderer with an offscreen target of the given size.
func New(width, height int32) (*Renderer, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}

	program, err := shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		fb.Destroy()
		return nil, fmt.Errorf("shader: %w", err)
	}

	r := &Renderer{
		fb:        fb,
		program:   program,
		BaseColor: defaultBaseColor,
		Light:     lighting.Default(),
	}
	r.locModel = shader.MustGetUniform(program, "uModel")
	r.locView = shader.MustGetUniform(program, "uView")
	r.locProjection = shader.MustGetUniform(program, "uProjection")
	r.locLightDir = shader.MustGetUniform(program, "uLightDir")
	r.locAmbient = shader.MustGetUniform(program, "uAmbient")
	r.locDiffuse = shader.MustGetUniform(program, "uDiffuse")
	r.locBaseColor = shader.MustGetUniform(program, "uBaseColor")
	r.locEmissive = shader.MustGetUniform(program, "uEmissive")

	return r, nil
}

// UploadModel replaces the GPU buffers with the scene's current entries.
// Call on the render goroutine whenever a new model is installed.
func (r *Renderer) UploadModel(entries []*scene.MeshEntry) {
	r.clearMeshes()
	r.BaseColor = defaultBaseColor

	for _, e := range entries {
		mb := uploadMesh(e)
		if mb != nil {
			r.meshes = append(r.meshes, *mb)
		}
	}
}

func uploadMesh(e *scene.MeshEntry) *meshBuffer {
	m := e.Node.Mesh
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil
	}

	mb := &meshBuffer{entry: e, indexCount: int32(len(m.Indices))}
	stride := int32(unsafe.Sizeof(model.Vertex{}))

	gl.GenVertexArrays(1, &mb.vao)
	gl.BindVertexArray(mb.vao)

	gl.GenBuffers(1, &mb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mb.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return mb
}

// Render draws all meshes with the camera's current pose and returns the
// color texture to embed in the UI.
func (r *Renderer) Render(cam *camera.OrbitCamera) uint32 {
	restore := r.fb.BindWithViewport()
	defer restore()

	r.fb.Clear(0.10, 0.11, 0.14, 1.0)

	if len(r.meshes) == 0 {
		return r.fb.ColorTexture()
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.UseProgram(r.program)

	view := cam.ViewMatrix()
	projection := r.Projection()
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())

	dir := r.Light.Direction()
	gl.Uniform3f(r.locLightDir, dir[0], dir[1], dir[2])
	gl.Uniform3f(r.locAmbient, r.Light.Ambient[0], r.Light.Ambient[1], r.Light.Ambient[2])
	gl.Uniform3f(r.locDiffuse, r.Light.Diffuse[0], r.Light.Diffuse[1], r.Light.Diffuse[2])
	gl.Uniform3f(r.locBaseColor, r.BaseColor[0], r.BaseColor[1], r.BaseColor[2])

	for _, mb := range r.meshes {
		world := mb.entry.Node.World
		gl.UniformMatrix4fv(r.locModel, 1, false, world.Ptr())

		em := mb.entry.Emissive
		gl.Uniform3f(r.locEmissive, em[0], em[1], em[2])

		gl.BindVertexArray(mb.vao)
		gl.DrawElements(gl.TRIANGLES, mb.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)

	return r.fb.ColorTexture()
}

// Projection returns the projection matrix for the current target size.
func (r *Renderer) Projection() math.Mat4 {
	w, h := r.fb.Size()
	aspect := float32(w) / float32(h)
	return math.Perspective(fovY, aspect, 0.05, 1000.0)
}

// ViewProj returns the combined view-projection matrix, the input to
// click-ray construction.
func (r *Renderer) ViewProj(cam *camera.OrbitCamera) math.Mat4 {
	return r.Projection().Mul(cam.ViewMatrix())
}

// Resize adjusts the offscreen target to the displayed size.
func (r *Renderer) Resize(width, height int32) {
	r.fb.Resize(width, height)
}

// Size returns the offscreen target dimensions.
func (r *Renderer) Size() (int32, int32) {
	return r.fb.Size()
}

// Blit copies the offscreen image to the default framebuffer, stretched to
// dstW x dstH. Used by the fullscreen kiosk, which has no UI compositor.
func (r *Renderer) Blit(dstW, dstH int32) {
	w, h := r.fb.Size()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fb.FBO())
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, dstW, dstH, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels captures the rendered frame as RGBA bytes.
func (r *Renderer) ReadPixels() []byte {
	return r.fb.ReadPixels()
}

func (r *Renderer) clearMeshes() {
	for i := range r.meshes {
		mb := &r.meshes[i]
		if mb.vao != 0 {
			gl.DeleteVertexArrays(1, &mb.vao)
		}
		if mb.vbo != 0 {
			gl.DeleteBuffers(1, &mb.vbo)
		}
		if mb.ebo != 0 {
			gl.DeleteBuffers(1, &mb.ebo)
		}
	}
	r.meshes = nil
}

// Destroy releases GPU buffers, the shader, and the framebuffer, in that
// order.
func (r *Renderer) Destroy() {
	r.clearMeshes()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.fb != nil {
		r.fb.Destroy()
		r.fb = nil
	}
}
