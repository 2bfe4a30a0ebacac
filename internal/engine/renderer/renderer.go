// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/lighting"
	"github.com/Faultbox/cutaway/internal/engine/model"
	"github.com/Faultbox/cutaway/internal/engine/renderer/shaders"
	"github.com/Faultbox/cutaway/internal/engine/shader"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// gpuMesh is a mesh uploaded to the GPU.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer executes clipping draw lists with OpenGL. It implements
// clipping.Target.
type Renderer struct {
	config Config
	Sun    lighting.Sun

	program  *shader.Program
	meshes   map[*model.Mesh]*gpuMesh
	viewProj math.Mat4
	draws    int
	log      *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		Sun:      lighting.NewSun(40, 55, 0.35),
		meshes:   make(map[*model.Mesh]*gpuMesh),
		viewProj: math.Identity(),
		log:      logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	program, err := shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.program = program

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	r.ReleaseAll()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame with the given camera.
func (r *Renderer) Begin(viewProj math.Mat4) {
	r.viewProj = viewProj
	r.draws = 0

	// The GL context may be shared with an ImGui backend that changes these.
	bg := r.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.StencilMask(0xFF)
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.ClearStencil(0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.program.SetVec3("uLightDir", r.Sun.Direction.Array())
	r.program.SetVec3("uLightColor", r.Sun.Color)
	r.program.SetVec3("uAmbient", r.Sun.Ambient)
}

// End finishes the current frame and restores default state.
func (r *Renderer) End() {
	for i := range uint32(clipping.AxisCount) {
		gl.Disable(gl.CLIP_DISTANCE0 + i)
	}
	gl.Disable(gl.STENCIL_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.StencilMask(0xFF)
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.BindVertexArray(0)
}

// Draws returns the number of draw calls issued since Begin.
func (r *Renderer) Draws() int {
	return r.draws
}

// ClearStencil resets the stencil buffer to zero.
func (r *Renderer) ClearStencil() {
	gl.StencilMask(0xFF)
	gl.ClearStencil(0)
	gl.Clear(gl.STENCIL_BUFFER_BIT)
}

// Draw executes one drawable with its material state and clip planes.
func (r *Renderer) Draw(d *clipping.Drawable, clip []clipping.Plane) {
	if d.Mesh == nil || d.Node == nil {
		return
	}
	gm, err := r.upload(d.Mesh)
	if err != nil {
		r.log.Warn("mesh upload failed", zap.String("mesh", d.Mesh.Name), zap.Error(err))
		return
	}

	r.applyState(d.Material, len(clip))

	m := d.Material
	r.program.SetMat4("uModel", d.Node.Matrix())
	r.program.SetVec4Array("uClipPlanes", clipUniforms(clip))
	r.program.SetInt("uClipCount", int32(len(clip)))
	r.program.SetVec3("uColor", m.Color)
	r.program.SetFloat("uRoughness", m.Roughness)
	r.program.SetFloat("uMetalness", m.Metalness)
	lit := int32(0)
	if m.Lit {
		lit = 1
	}
	r.program.SetInt("uLit", lit)

	gl.BindVertexArray(gm.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, 0)
	r.draws++
}

// applyState translates a material into GL fixed-function state.
func (r *Renderer) applyState(m clipping.Material, clipCount int) {
	gl.ColorMask(m.ColorWrite, m.ColorWrite, m.ColorWrite, m.ColorWrite)
	gl.DepthMask(m.DepthWrite)
	if m.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if cull, face := cullMode(m.Side); cull {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(face)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	if m.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	st := m.Stencil
	if st.Write || st.Func != clipping.StencilAlways {
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilFunc(stencilFunc(st.Func), int32(st.Ref), 0xFF)
		gl.StencilOp(stencilOp(st.Fail), stencilOp(st.ZFail), stencilOp(st.ZPass))
		if st.Write {
			gl.StencilMask(0xFF)
		} else {
			gl.StencilMask(0)
		}
	} else {
		gl.Disable(gl.STENCIL_TEST)
	}

	for i := range clipping.AxisCount {
		if i < clipCount {
			gl.Enable(gl.CLIP_DISTANCE0 + uint32(i))
		} else {
			gl.Disable(gl.CLIP_DISTANCE0 + uint32(i))
		}
	}
}

// upload returns the GPU copy of mesh, creating it on first use.
func (r *Renderer) upload(mesh *model.Mesh) (*gpuMesh, error) {
	if gm, ok := r.meshes[mesh]; ok {
		return gm, nil
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("empty mesh")
	}

	gm := &gpuMesh{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.meshes[mesh] = gm
	r.log.Debug("mesh uploaded",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int32("indices", gm.indexCount),
	)
	return gm, nil
}

// Release frees the GPU copy of mesh, if any.
func (r *Renderer) Release(mesh *model.Mesh) {
	gm, ok := r.meshes[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteBuffers(1, &gm.ebo)
	delete(r.meshes, mesh)
}

// ReleaseAll frees every uploaded mesh.
func (r *Renderer) ReleaseAll() {
	for mesh := range r.meshes {
		r.Release(mesh)
	}
}
