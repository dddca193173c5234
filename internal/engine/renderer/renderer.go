// Package renderer draws the scene graph with OpenGL. It owns the GPU-side
// buffers of mesh nodes (upload and release) so geometry lifecycle stays
// deterministic; the lod.Manager calls Release through its release hook.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lodview/internal/engine/geometry"
	"github.com/Faultbox/lodview/internal/engine/renderer/shaders"
	"github.com/Faultbox/lodview/internal/engine/scene"
	"github.com/Faultbox/lodview/internal/engine/shader"
	"github.com/Faultbox/lodview/pkg/math"
)

// meshBuffers holds the GL objects for one uploaded mesh node.
type meshBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer draws visible mesh nodes of a scene graph.
type Renderer struct {
	program uint32

	locMVP       int32
	locModel     int32
	locLightDir  int32
	locAmbient   int32
	locBaseColor int32
	locOpacity   int32

	// Lighting
	LightDir [3]float32
	Ambient  [3]float32
}

// New creates a renderer and initializes OpenGL bindings.
// Must be called after the OpenGL context exists.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	r := &Renderer{
		LightDir: [3]float32{0.4, 0.8, 0.45},
		Ambient:  [3]float32{0.3, 0.3, 0.3},
	}

	program, err := shader.CompileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.program = program

	r.locMVP = shader.GetUniform(program, "uMVP")
	r.locModel = shader.GetUniform(program, "uModel")
	r.locLightDir = shader.GetUniform(program, "uLightDir")
	r.locAmbient = shader.GetUniform(program, "uAmbient")
	r.locBaseColor = shader.GetUniform(program, "uBaseColor")
	r.locOpacity = shader.GetUniform(program, "uOpacity")

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return r, nil
}

// Upload creates GPU buffers for the node's mesh and stashes the handles on
// the node. A node that is already uploaded is left alone.
func (r *Renderer) Upload(n *scene.Node) error {
	if n == nil || !n.HasGeometry() || n.GPU != nil {
		return nil
	}
	mesh := n.Mesh

	var buf meshBuffers
	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(unsafe.Sizeof(geometry.Vertex{})),
		gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &buf.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	buf.indexCount = int32(len(mesh.Indices))

	stride := int32(unsafe.Sizeof(geometry.Vertex{}))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)

	n.GPU = &buf
	return nil
}

// UploadTree uploads every mesh node in the subtree.
func (r *Renderer) UploadTree(root *scene.Node) error {
	var err error
	root.Walk(func(n *scene.Node) bool {
		if e := r.Upload(n); e != nil && err == nil {
			err = e
		}
		return true
	})
	return err
}

// Release deletes the node's GPU buffers. Safe for nodes that were never
// uploaded. This is the release hook handed to the lod.Manager.
func (r *Renderer) Release(n *scene.Node) error {
	if n == nil || n.GPU == nil {
		return nil
	}
	buf, ok := n.GPU.(*meshBuffers)
	if !ok {
		return fmt.Errorf("node %s: unexpected GPU handle type %T", n.Name(), n.GPU)
	}
	gl.DeleteBuffers(1, &buf.vbo)
	gl.DeleteBuffers(1, &buf.ebo)
	gl.DeleteVertexArrays(1, &buf.vao)
	n.GPU = nil
	return nil
}

// Render draws all visible mesh nodes under root. Invisible nodes hide
// their whole subtree. Mesh nodes not yet uploaded are uploaded on first
// sight so level meshes built after startup still draw.
func (r *Renderer) Render(root *scene.Node, viewProj math.Mat4) {
	gl.UseProgram(r.program)
	gl.Uniform3fv(r.locLightDir, 1, &r.LightDir[0])
	gl.Uniform3fv(r.locAmbient, 1, &r.Ambient[0])

	root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.HasGeometry() {
			r.drawNode(n, viewProj)
		}
		return true
	})
}

func (r *Renderer) drawNode(n *scene.Node, viewProj math.Mat4) {
	if n.GPU == nil {
		if err := r.Upload(n); err != nil || n.GPU == nil {
			return
		}
	}
	buf := n.GPU.(*meshBuffers)

	pos := n.WorldPos()
	model := math.Translate(pos.X, pos.Y, pos.Z)
	mvp := viewProj.Mul(model)

	gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])

	mat := n.Mat
	if mat == nil {
		mat = scene.DefaultMaterial()
	}
	gl.Uniform4fv(r.locBaseColor, 1, &mat.BaseColor[0])
	gl.Uniform1f(r.locOpacity, mat.Opacity)

	if mat.Transparent {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	}
	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	if mat.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	}

	gl.BindVertexArray(buf.vao)
	gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if mat.DoubleSided {
		gl.Enable(gl.CULL_FACE)
	}
	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	if mat.Transparent {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
}

// Clear clears the framebuffer with the given color.
func (r *Renderer) Clear(red, green, blue float32) {
	gl.ClearColor(red, green, blue, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Destroy releases the shader program.
func (r *Renderer) Destroy() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
